package constants

type APIStatus string

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"
	APIStatusDown  APIStatus = "down"

	// StatusCollection is the collection, table or list key status checks live under.
	StatusCollection = "status_checks"
)
