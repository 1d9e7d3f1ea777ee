package server

import (
	"net/http"
	"strings"

	"accountd/pkg/log"
	"accountd/pkg/models"

	"github.com/labstack/echo/v4"
)

func (srv *Server) checkUsername(ctx echo.Context) error {
	value := strings.TrimSpace(ctx.QueryParam("value"))
	if value == "" {
		return ctx.JSON(http.StatusBadRequest, models.MessageResponse{
			Message: "Username value is required.",
		})
	}

	unique, err := srv.accounts.UsernameIsUnique(value)
	if err != nil {
		log.Error().Err(err).Str("value", value).Msg("Failed to check username uniqueness")
		return ctx.JSON(http.StatusInternalServerError, models.MessageResponse{
			Message: "Failed to check username.",
		})
	}

	return ctx.JSON(http.StatusOK, models.UniqueResponse{Unique: unique})
}
