package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"community-board/internal/app"
	"community-board/internal/gateway"
	"community-board/internal/transport/http/response"
)

// serviceError maps the service error taxonomy onto HTTP status and app
// codes. Anything unrecognized is a store failure and stays opaque.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrNicknameTaken):
		response.Error(c, http.StatusConflict, response.CodeNicknameTaken, err.Error())
	case errors.Is(err, gateway.ErrEmailExists):
		response.Error(c, http.StatusConflict, response.CodeEmailExists, err.Error())
	case errors.Is(err, gateway.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error())
	case errors.Is(err, app.ErrAuthRequired):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, app.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "internal error")
	}
}
