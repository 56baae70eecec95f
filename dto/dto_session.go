package dto

type SessionDTO struct {
	Email string `json:"email"`
}
