package dto

type ErrorResponse struct {
	Message string `json:"message"`
}

type AckResponse struct {
	Success bool `json:"success"`
}
