package client

import (
	"regexp"
	"strings"

	"accountd/pkg/models"
)

// Submit-time mirror of the server's field rules. The mirror only
// short-circuits obviously invalid drafts before a network round trip; the
// server remains the authoritative gate and re-checks everything.
var (
	mirrorAlphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	mirrorEmailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Messages match the ones the server reports for the same violations.
const (
	mirrorMsgAlphanumeric = "Only alphanumeric format is supported"
	mirrorMsgEmail        = "Valid email format is required"
	mirrorMsgUsername     = "Alphanumeric without spaces and must be unique (case insensitive)"
)

// ValidateDraft checks the draft against the mirrored rules, folding in the
// last observed uniqueness verdict for the username. An empty map means the
// draft may be submitted.
func ValidateDraft(draft models.ProfileUpdate, usernameUnique bool) map[string]string {
	errors := make(map[string]string)

	if !mirrorAlphanumericPattern.MatchString(strings.TrimSpace(draft.FirstName)) {
		errors["firstName"] = mirrorMsgAlphanumeric
	}
	if !mirrorAlphanumericPattern.MatchString(strings.TrimSpace(draft.LastName)) {
		errors["lastName"] = mirrorMsgAlphanumeric
	}
	if !mirrorEmailPattern.MatchString(strings.TrimSpace(draft.Email)) {
		errors["email"] = mirrorMsgEmail
	}
	if !mirrorAlphanumericPattern.MatchString(strings.TrimSpace(draft.Username)) || !usernameUnique {
		errors["username"] = mirrorMsgUsername
	}

	return errors
}
