package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"accountd/pkg/account"
	"accountd/pkg/models"
)

func (s *ServerTestSuite) putAccount(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/account", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

// TestUpdateAccountSuccess tests a valid update round-trips trimmed values.
func (s *ServerTestSuite) TestUpdateAccountSuccess() {
	rec := s.putAccount(`{"firstName":" Grace ","lastName":"Hopper","email":" grace@example.com ","username":"graceh"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var response models.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("Grace", response.FirstName)
	s.Equal("Hopper", response.LastName)
	s.Equal("grace@example.com", response.Email)
	s.Equal("graceh", response.Username)

	record, err := s.accounts.Get()
	s.Require().NoError(err)
	s.Equal("graceh", record.Username)
}

// TestUpdateAccountFieldErrors tests the 400 payload for invalid fields.
func (s *ServerTestSuite) TestUpdateAccountFieldErrors() {
	rec := s.putAccount(`{"firstName":"John Doe","lastName":"Hopper","email":"grace@example.com","username":"graceh"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var response models.ValidationErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("Invalid account data.", response.Message)
	s.Require().Len(response.Errors, 1)
	s.Equal("firstName", response.Errors[0].Path)
	s.Equal(account.MsgAlphanumeric, response.Errors[0].Message)

	// No partial update happened.
	record, err := s.accounts.Get()
	s.Require().NoError(err)
	s.Equal("Ada", record.FirstName)
	s.Equal("Lovelace", record.LastName)
}

// TestUpdateAccountCaseOnlyUsername tests that a self-update differing only
// in letter case is accepted, not treated as a conflict.
func (s *ServerTestSuite) TestUpdateAccountCaseOnlyUsername() {
	rec := s.putAccount(`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","username":"ADAL"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var response models.AccountResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("ADAL", response.Username)
}

// TestUpdateAccountConflict tests the 409 when the username collides with a
// different account, case-insensitively.
func (s *ServerTestSuite) TestUpdateAccountConflict() {
	s.insertSecondAccount("graceh")

	rec := s.putAccount(`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","username":"GraceH"}`)
	s.Require().Equal(http.StatusConflict, rec.Code)

	var response models.MessageResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(account.MsgUsername, response.Message)

	record, err := s.accounts.Get()
	s.Require().NoError(err)
	s.Equal("adal", record.Username)
}

// TestUpdateAccountMalformedBody tests the 400 on a body that is not JSON.
func (s *ServerTestSuite) TestUpdateAccountMalformedBody() {
	rec := s.putAccount(`{"firstName":`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var response models.MessageResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("Invalid account data.", response.Message)
}
