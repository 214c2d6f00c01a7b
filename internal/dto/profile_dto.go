package dto

// ProfileUpdateRequest edits the account's display fields.
type ProfileUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2"`
}
