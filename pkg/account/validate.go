package account

import (
	"regexp"
	"strings"

	"accountd/pkg/models"
)

const (
	nameMaxLength     = 40
	usernameMinLength = 3
	usernameMaxLength = 24
)

var (
	// alphanumericPattern accepts ASCII letters and digits only, no spaces.
	alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	// emailPattern requires a local part, an @ and a domain containing a dot.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validation messages surfaced to clients, field by field.
const (
	MsgAlphanumeric = "Only alphanumeric format is supported"
	MsgEmail        = "Valid email format is required"
	MsgUsername     = "Alphanumeric without spaces and must be unique (case insensitive)"
)

// fieldRule is one entry of the profile rule table: where the field lives,
// its length bounds, its shape and the message reported on violation.
type fieldRule struct {
	path    string
	field   func(*models.ProfileUpdate) *string
	minLen  int
	maxLen  int
	pattern *regexp.Regexp
	message string
}

var profileRules = []fieldRule{
	{
		path:    "firstName",
		field:   func(p *models.ProfileUpdate) *string { return &p.FirstName },
		minLen:  1,
		maxLen:  nameMaxLength,
		pattern: alphanumericPattern,
		message: MsgAlphanumeric,
	},
	{
		path:    "lastName",
		field:   func(p *models.ProfileUpdate) *string { return &p.LastName },
		minLen:  1,
		maxLen:  nameMaxLength,
		pattern: alphanumericPattern,
		message: MsgAlphanumeric,
	},
	{
		path:    "email",
		field:   func(p *models.ProfileUpdate) *string { return &p.Email },
		minLen:  1,
		pattern: emailPattern,
		message: MsgEmail,
	},
	{
		path:    "username",
		field:   func(p *models.ProfileUpdate) *string { return &p.Username },
		minLen:  usernameMinLength,
		maxLen:  usernameMaxLength,
		pattern: alphanumericPattern,
		message: MsgUsername,
	},
}

// Validate trims every profile field and checks it against the rule table.
// It returns the trimmed profile together with the list of violations; an
// empty list means the profile may be persisted as returned. Fields are
// checked independently so one response carries every failing field.
func Validate(profile models.ProfileUpdate) (models.ProfileUpdate, []models.FieldError) {
	var violations []models.FieldError

	for _, rule := range profileRules {
		value := rule.field(&profile)
		*value = strings.TrimSpace(*value)

		if !validField(*value, rule) {
			violations = append(violations, models.FieldError{
				Path:    rule.path,
				Message: rule.message,
			})
		}
	}

	return profile, violations
}

func validField(value string, rule fieldRule) bool {
	if len(value) < rule.minLen {
		return false
	}
	if rule.maxLen > 0 && len(value) > rule.maxLen {
		return false
	}
	return rule.pattern.MatchString(value)
}
