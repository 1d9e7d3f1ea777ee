package models

// Account represents the singleton account row as stored.
type Account struct {
	FirstName      string
	LastName       string
	Email          string
	Username       string
	AvatarFilename string // empty means the default avatar is used
}

// AccountResponse is the external representation of the account.
type AccountResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// ProfileUpdate carries the four editable profile fields.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the 400 payload for a rejected profile update.
type ValidationErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// MessageResponse is a single-message payload used by error responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// UniqueResponse is the payload of the username uniqueness check.
type UniqueResponse struct {
	Unique bool `json:"unique"`
}

// AvatarResponse is the payload returned after an avatar upload.
type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}
