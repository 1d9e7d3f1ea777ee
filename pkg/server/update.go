package server

import (
	"errors"
	"net/http"

	"accountd/pkg/account"
	"accountd/pkg/log"
	"accountd/pkg/models"

	"github.com/labstack/echo/v4"
)

func (srv *Server) updateAccount(ctx echo.Context) error {
	var payload models.ProfileUpdate
	if err := ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, models.MessageResponse{
			Message: "Invalid account data.",
		})
	}

	// Validation is all-or-nothing: any violation rejects the whole update.
	profile, violations := account.Validate(payload)
	if len(violations) > 0 {
		return ctx.JSON(http.StatusBadRequest, models.ValidationErrorResponse{
			Message: "Invalid account data.",
			Errors:  violations,
		})
	}

	// Friendly conflict path; the unique index still guards the write itself.
	unique, err := srv.accounts.UsernameIsUnique(profile.Username)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check username uniqueness")
		return ctx.JSON(http.StatusInternalServerError, models.MessageResponse{
			Message: "Failed to update account.",
		})
	}
	if !unique {
		return ctx.JSON(http.StatusConflict, models.MessageResponse{
			Message: account.MsgUsername,
		})
	}

	updated, err := srv.accounts.UpdateProfile(profile)
	if err != nil {
		if errors.Is(err, account.ErrUsernameTaken) {
			return ctx.JSON(http.StatusConflict, models.MessageResponse{
				Message: account.MsgUsername,
			})
		}
		log.Error().Err(err).Msg("Failed to update account")
		return ctx.JSON(http.StatusInternalServerError, models.MessageResponse{
			Message: "Failed to update account.",
		})
	}

	log.Info().Str("username", updated.Username).Msg("Account updated")
	return ctx.JSON(http.StatusOK, srv.shapeAccount(updated))
}
