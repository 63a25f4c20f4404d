package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"community-board/internal/app"
	"community-board/internal/gateway"
	"community-board/internal/transport/http/middleware"
	"community-board/internal/transport/http/response"
)

type AuthHandler struct {
	profiles *app.ProfileService
	sessions *app.SessionService
	gateway  *gateway.Gateway
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(profiles *app.ProfileService, sessions *app.SessionService, gw *gateway.Gateway) *AuthHandler {
	return &AuthHandler{profiles: profiles, sessions: sessions, gateway: gw}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	identity, err := h.profiles.SignUp(c.Request.Context(), req.Email, req.Password, req.Nickname)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, gin.H{
		"id":    identity.ID,
		"email": identity.Email,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	session, err := h.profiles.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}

	// a banned account authenticates but is expelled right here
	state, err := h.sessions.Refresh(c.Request.Context(), session)
	if err != nil {
		serviceError(c, err)
		return
	}
	if state.Banned {
		response.Error(c, http.StatusForbidden, response.CodeForbidden, state.Notice)
		return
	}

	response.OK(c, gin.H{
		"token":   session.Token,
		"session": state,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session != nil {
		if err := h.gateway.SignOut(c.Request.Context(), session.Token); err != nil {
			serviceError(c, err)
			return
		}
	}
	response.OK(c, gin.H{"logged_in": false})
}
