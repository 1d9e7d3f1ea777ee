package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"

	"accountd/pkg/models"
)

// avatarRequest builds a multipart upload with an explicit part content type.
func (s *ServerTestSuite) avatarRequest(filename, contentType string, content []byte) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/account/avatar", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func (s *ServerTestSuite) avatarFilename() string {
	record, err := s.accounts.Get()
	s.Require().NoError(err)
	return record.AvatarFilename
}

// TestUploadAvatarSuccess tests that a valid upload stores the file and
// points the account at it.
func (s *ServerTestSuite) TestUploadAvatarSuccess() {
	rec := s.do(s.avatarRequest("selfie.png", "image/png", []byte("png bytes")))
	s.Require().Equal(http.StatusOK, rec.Code)

	var response models.AvatarResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Contains(response.AvatarURL, "http://localhost:4000/uploads/")
	s.True(strings.HasSuffix(response.AvatarURL, ".png"), response.AvatarURL)

	filename := s.avatarFilename()
	s.NotEmpty(filename)
	s.True(s.files.Exists(filename))
}

// TestUploadAvatarServedStatically tests that a stored avatar is retrievable
// through the uploads route.
func (s *ServerTestSuite) TestUploadAvatarServedStatically() {
	rec := s.do(s.avatarRequest("selfie.png", "image/png", []byte("png bytes")))
	s.Require().Equal(http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/uploads/"+s.avatarFilename(), nil)
	fileRec := s.do(req)
	s.Require().Equal(http.StatusOK, fileRec.Code)
	s.Equal("png bytes", fileRec.Body.String())
}

// TestUploadAvatarReplaceKeepsOldFile tests that replacing an avatar attaches
// a new file and leaves the previous one retrievable.
func (s *ServerTestSuite) TestUploadAvatarReplaceKeepsOldFile() {
	rec := s.do(s.avatarRequest("old.png", "image/png", []byte("old bytes")))
	s.Require().Equal(http.StatusOK, rec.Code)
	oldFilename := s.avatarFilename()

	rec = s.do(s.avatarRequest("new.jpg", "image/jpeg", []byte("new bytes")))
	s.Require().Equal(http.StatusOK, rec.Code)
	newFilename := s.avatarFilename()

	s.NotEqual(oldFilename, newFilename)
	s.True(s.files.Exists(oldFilename))
	s.True(s.files.Exists(newFilename))
}

// TestUploadAvatarMissingFile tests the 400 when no avatar part is sent.
func (s *ServerTestSuite) TestUploadAvatarMissingFile() {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	s.Require().NoError(writer.WriteField("notavatar", "data"))
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/account/avatar", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := s.do(req)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var response models.MessageResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("Avatar file is required.", response.Message)
}

// TestUploadAvatarDisallowedType tests that a non-image content type is
// rejected with no change to the stored reference.
func (s *ServerTestSuite) TestUploadAvatarDisallowedType() {
	rec := s.do(s.avatarRequest("notes.txt", "text/plain", []byte("not an image")))
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var response models.MessageResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("Only PNG and JPG uploads are allowed.", response.Message)

	s.Empty(s.avatarFilename())
}

// TestUploadAvatarTooLarge tests that an upload over 2 MiB is rejected with
// no change to the stored reference.
func (s *ServerTestSuite) TestUploadAvatarTooLarge() {
	oversized := bytes.Repeat([]byte("a"), maxAvatarBytes+1)

	rec := s.do(s.avatarRequest("big.png", "image/png", oversized))
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var response models.MessageResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("File too large", response.Message)

	s.Empty(s.avatarFilename())
}
