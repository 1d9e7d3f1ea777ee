package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"

	_ "modernc.org/sqlite"

	"accountd/pkg/models"
)

// insertSecondAccount writes an extra account row straight into the database
// file, giving the uniqueness check something to collide with.
func (s *ServerTestSuite) insertSecondAccount(username string) {
	db, err := sql.Open("sqlite", filepath.Join(s.tempDir, "test.db"))
	s.Require().NoError(err)
	defer db.Close()

	_, err = db.Exec(
		`INSERT INTO account (id, first_name, last_name, email, username, avatar_filename) VALUES (2, 'Grace', 'Hopper', 'grace@example.com', ?, NULL)`,
		username,
	)
	s.Require().NoError(err)
}

func usernameCheckURL(value string) string {
	return "/api/account/username?value=" + url.QueryEscape(value)
}

// TestCheckUsernameMissingValue tests the 400 on an absent query param.
func (s *ServerTestSuite) TestCheckUsernameMissingValue() {
	req := httptest.NewRequest(http.MethodGet, "/api/account/username", nil)

	rec := s.do(req)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var response models.MessageResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("Username value is required.", response.Message)
}

// TestCheckUsernameBlankValue tests the 400 on a whitespace-only value.
func (s *ServerTestSuite) TestCheckUsernameBlankValue() {
	req := httptest.NewRequest(http.MethodGet, usernameCheckURL("   "), nil)

	rec := s.do(req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// TestCheckUsernameSelfIsUnique tests that the account's own username, in any
// letter case, reports unique.
func (s *ServerTestSuite) TestCheckUsernameSelfIsUnique() {
	for _, candidate := range []string{"adal", "ADAL"} {
		req := httptest.NewRequest(http.MethodGet, usernameCheckURL(candidate), nil)

		rec := s.do(req)
		s.Require().Equal(http.StatusOK, rec.Code)

		var response models.UniqueResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.True(response.Unique, candidate)
	}
}

// TestCheckUsernameCollision tests that another account's username reports
// not-unique regardless of letter case.
func (s *ServerTestSuite) TestCheckUsernameCollision() {
	s.insertSecondAccount("Ada")

	for _, candidate := range []string{"Ada", "ADA", "ada"} {
		req := httptest.NewRequest(http.MethodGet, usernameCheckURL(candidate), nil)

		rec := s.do(req)
		s.Require().Equal(http.StatusOK, rec.Code)

		var response models.UniqueResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.False(response.Unique, candidate)
	}
}
