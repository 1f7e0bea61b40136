package dtos

type StatusCheckCreateReq struct {
	ClientName string `json:"client_name" validate:"required,notblank"`
}
