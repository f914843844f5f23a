package dto

type CreatedResponse struct {
	ID uint `json:"id"`
}
