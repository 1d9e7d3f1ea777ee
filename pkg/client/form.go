package client

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"accountd/pkg/models"
)

// ErrInvalidDraft is returned by Submit when the local mirror rejects the
// draft; the per-field messages are available via FieldErrors.
var ErrInvalidDraft = errors.New("draft failed local validation")

// Form drives the profile edit flow the way the browser form does: it holds
// the draft, runs the debounced uniqueness check while the username is
// typed, validates locally on submit and only then calls the server.
type Form struct {
	api     *Client
	checker *UniqueChecker

	mu          sync.Mutex
	draft       models.ProfileUpdate
	avatarURL   string
	fieldErrors map[string]string
}

// NewForm creates a form over the given API client.
func NewForm(api *Client, settleWindow time.Duration) *Form {
	return &Form{
		api:         api,
		checker:     NewUniqueChecker(api, settleWindow),
		fieldErrors: make(map[string]string),
	}
}

// Load fetches the account and resets the draft to it.
func (f *Form) Load(ctx context.Context) error {
	account, err := f.api.GetAccount(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft = models.ProfileUpdate{
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Username:  account.Username,
	}
	f.avatarURL = account.AvatarURL
	f.fieldErrors = make(map[string]string)
	return nil
}

// SetFirstName updates the draft and clears the field's error.
func (f *Form) SetFirstName(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.FirstName = value
	delete(f.fieldErrors, "firstName")
}

// SetLastName updates the draft and clears the field's error.
func (f *Form) SetLastName(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.LastName = value
	delete(f.fieldErrors, "lastName")
}

// SetEmail updates the draft and clears the field's error.
func (f *Form) SetEmail(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Email = value
	delete(f.fieldErrors, "email")
}

// SetUsername updates the draft, clears the field's error and feeds the
// debounced uniqueness checker.
func (f *Form) SetUsername(value string) {
	f.mu.Lock()
	f.draft.Username = value
	delete(f.fieldErrors, "username")
	f.mu.Unlock()

	f.checker.Input(value)
}

// Draft returns the current draft.
func (f *Form) Draft() models.ProfileUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// AvatarURL returns the avatar currently shown.
func (f *Form) AvatarURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.avatarURL
}

// FieldErrors returns a copy of the current per-field messages.
func (f *Form) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(map[string]string, len(f.fieldErrors))
	for field, message := range f.fieldErrors {
		errs[field] = message
	}
	return errs
}

// Submit validates the draft locally and, if clean, sends it to the server.
// Local violations return ErrInvalidDraft without any network call; server
// rejections update the field errors and are returned as typed errors.
func (f *Form) Submit(ctx context.Context) (*models.AccountResponse, error) {
	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()

	if errs := ValidateDraft(draft, f.checker.Unique()); len(errs) > 0 {
		f.mu.Lock()
		f.fieldErrors = errs
		f.mu.Unlock()
		return nil, ErrInvalidDraft
	}

	account, err := f.api.UpdateAccount(ctx, draft)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			f.mu.Lock()
			for _, fieldError := range validationErr.Fields {
				f.fieldErrors[fieldError.Path] = fieldError.Message
			}
			f.mu.Unlock()
		}
		return nil, err
	}

	f.mu.Lock()
	f.draft = models.ProfileUpdate{
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Username:  account.Username,
	}
	f.mu.Unlock()

	return account, nil
}

// UploadAvatar runs the local image pre-check and, if it passes, uploads the
// bytes and records the returned URL.
func (f *Form) UploadAvatar(ctx context.Context, filename, contentType string, content []byte) (string, error) {
	if err := CheckAvatarImage(contentType, bytes.NewReader(content)); err != nil {
		return "", err
	}

	avatarURL, err := f.api.UpdateAvatar(ctx, filename, contentType, bytes.NewReader(content))
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	f.avatarURL = avatarURL
	f.mu.Unlock()

	return avatarURL, nil
}

// Close releases the debounce timer.
func (f *Form) Close() {
	f.checker.Close()
}
