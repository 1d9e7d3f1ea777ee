package server

import (
	"net/http"

	"accountd/pkg/log"
	"accountd/pkg/models"

	"github.com/labstack/echo/v4"
)

func (srv *Server) getAccount(ctx echo.Context) error {
	record, err := srv.accounts.Get()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load account")
		return ctx.JSON(http.StatusInternalServerError, models.MessageResponse{
			Message: "Failed to load account.",
		})
	}

	return ctx.JSON(http.StatusOK, srv.shapeAccount(record))
}
