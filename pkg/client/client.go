// Package client is a Go client for the account profile API, mirroring the
// browser form's behavior: advisory validation before submit, a debounced
// username uniqueness check and a local avatar pre-check.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"accountd/pkg/models"
)

const requestTimeout = 10 * time.Second

// Client talks to the account service. Reads go through a retrying client;
// mutations use a plain client and are never retried automatically.
type Client struct {
	baseURL string
	reads   *retryablehttp.Client
	writes  *http.Client
}

// New creates a client for the service at baseURL.
func New(baseURL string) *Client {
	reads := retryablehttp.NewClient()
	reads.RetryMax = 2
	reads.RetryWaitMin = 100 * time.Millisecond
	reads.RetryWaitMax = time.Second
	reads.HTTPClient.Timeout = requestTimeout
	reads.Logger = nil // Disable retryablehttp logging

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		reads:   reads,
		writes:  &http.Client{Timeout: requestTimeout},
	}
}

// ValidationError carries the field-level violations of a rejected update.
type ValidationError struct {
	Message string
	Fields  []models.FieldError
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError is returned when the submitted username is already taken.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// UploadRejectedError is returned when the server refuses an avatar upload.
type UploadRejectedError struct {
	Message string
}

func (e *UploadRejectedError) Error() string {
	return e.Message
}

// GetAccount fetches the current account.
func (c *Client) GetAccount(ctx context.Context) (*models.AccountResponse, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/account", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.reads.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching account", resp.StatusCode)
	}

	var account models.AccountResponse
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}
	return &account, nil
}

// IsUsernameUnique asks the server whether the username is free,
// compared case-insensitively.
func (c *Client) IsUsernameUnique(ctx context.Context, value string) (bool, error) {
	checkURL := c.baseURL + "/api/account/username?value=" + url.QueryEscape(value)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, checkURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.reads.Do(req)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status %d checking username", resp.StatusCode)
	}

	var result models.UniqueResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode uniqueness result: %w", err)
	}
	return result.Unique, nil
}

// UpdateAccount submits the profile fields. Rejections come back as
// *ValidationError or *ConflictError.
func (c *Client) UpdateAccount(ctx context.Context, profile models.ProfileUpdate) (*models.AccountResponse, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/account", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.writes.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var account models.AccountResponse
		if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
			return nil, fmt.Errorf("failed to decode account: %w", err)
		}
		return &account, nil
	case http.StatusBadRequest:
		var rejection models.ValidationErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil {
			return nil, fmt.Errorf("failed to decode rejection: %w", err)
		}
		return nil, &ValidationError{Message: rejection.Message, Fields: rejection.Errors}
	case http.StatusConflict:
		var rejection models.MessageResponse
		if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil {
			return nil, fmt.Errorf("failed to decode rejection: %w", err)
		}
		return nil, &ConflictError{Message: rejection.Message}
	default:
		return nil, fmt.Errorf("unexpected status %d updating account", resp.StatusCode)
	}
}

// UpdateAvatar uploads a new avatar image and returns its public URL.
// Rejections come back as *UploadRejectedError.
func (c *Client) UpdateAvatar(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/account/avatar", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.writes.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var result models.AvatarResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return "", fmt.Errorf("failed to decode avatar response: %w", err)
		}
		return result.AvatarURL, nil
	case http.StatusBadRequest:
		var rejection models.MessageResponse
		if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil {
			return "", fmt.Errorf("failed to decode rejection: %w", err)
		}
		return "", &UploadRejectedError{Message: rejection.Message}
	default:
		return "", fmt.Errorf("unexpected status %d uploading avatar", resp.StatusCode)
	}
}
