package server

import "accountd/pkg/models"

// defaultAvatarFilename is served when the account has no avatar set.
// The contract always carries a fully-qualified URL, never null.
const defaultAvatarFilename = "default-avatar.jpg"

// shapeAccount maps the stored row onto the external contract.
func (srv *Server) shapeAccount(record *models.Account) models.AccountResponse {
	return models.AccountResponse{
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Email:     record.Email,
		Username:  record.Username,
		AvatarURL: srv.avatarURL(record.AvatarFilename),
	}
}

// avatarURL builds the public URL for a stored avatar filename, falling back
// to the default avatar when none is set.
func (srv *Server) avatarURL(filename string) string {
	if filename == "" {
		filename = defaultAvatarFilename
	}
	return srv.cfg.BaseURL() + "/uploads/" + filename
}
