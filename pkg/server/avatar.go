package server

import (
	"net/http"

	"accountd/pkg/log"
	"accountd/pkg/models"

	"github.com/labstack/echo/v4"
)

// maxAvatarBytes is the upload size ceiling (2 MiB).
const maxAvatarBytes = 2 << 20

// allowedAvatarTypes is the exact content-type allowlist for uploads.
// Broader image/* wildcards are deliberately not accepted.
var allowedAvatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

func (srv *Server) uploadAvatar(ctx echo.Context) error {
	file, err := ctx.FormFile("avatar")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, models.MessageResponse{
			Message: "Avatar file is required.",
		})
	}

	// Gates run in order, first failure wins; nothing is written on rejection.
	if !allowedAvatarTypes[file.Header.Get("Content-Type")] {
		return ctx.JSON(http.StatusBadRequest, models.MessageResponse{
			Message: "Only PNG and JPG uploads are allowed.",
		})
	}

	if file.Size > maxAvatarBytes {
		return ctx.JSON(http.StatusBadRequest, models.MessageResponse{
			Message: "File too large",
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return ctx.JSON(http.StatusInternalServerError, models.MessageResponse{
			Message: "Failed to store avatar.",
		})
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close uploaded file")
		}
	}()

	filename, err := srv.files.Save(src, file.Filename)
	if err != nil {
		log.Error().Err(err).Msg("Failed to store avatar file")
		return ctx.JSON(http.StatusInternalServerError, models.MessageResponse{
			Message: "Failed to store avatar.",
		})
	}

	updated, err := srv.accounts.SetAvatar(filename)
	if err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("Failed to record avatar")
		return ctx.JSON(http.StatusInternalServerError, models.MessageResponse{
			Message: "Failed to store avatar.",
		})
	}

	log.Info().Str("filename", filename).Msg("Avatar updated")
	return ctx.JSON(http.StatusOK, models.AvatarResponse{
		AvatarURL: srv.avatarURL(updated.AvatarFilename),
	})
}
