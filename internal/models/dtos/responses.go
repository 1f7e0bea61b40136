package dtos

type MessageResponse struct {
	Message string `json:"message"`
}
