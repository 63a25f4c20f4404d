package handler

import (
	"github.com/gin-gonic/gin"

	"community-board/internal/app"
	"community-board/internal/transport/http/middleware"
	"community-board/internal/transport/http/response"
)

type SessionHandler struct {
	sessions *app.SessionService
}

func NewSessionHandler(sessions *app.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Current returns the render state for the caller's session: label,
// admin visibility, or the ban notice with the session already revoked.
func (h *SessionHandler) Current(c *gin.Context) {
	state, err := h.sessions.Refresh(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, state)
}
