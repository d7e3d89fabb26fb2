package dto

type QueryRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	Query     string `json:"query" validate:"required,min=2"`
}

type SelectRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	Index     int    `json:"index" validate:"required,min=1"`
}

type RespondRequest struct {
	UserEmail      string `json:"user_email" validate:"required,email"`
	ConfirmationID string `json:"confirmation_id,omitempty"`
	Reply          string `json:"reply" validate:"required"`
}
