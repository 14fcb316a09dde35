package api

// IdRequest is the body of the delete endpoints.
type IdRequest struct {
	Id *int64 `json:"id" validate:"required"`
}

// ToggleRequest is the body of like and watch endpoints.
type ToggleRequest struct {
	Id     *int64 `json:"id" validate:"required"`
	TurnOn *bool  `json:"turnon" validate:"required"`
}

type IdResponse struct {
	Id int64 `json:"id"`
}

// EmptyResponse encodes as {}.
type EmptyResponse struct{}
