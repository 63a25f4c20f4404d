package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"community-board/internal/app"
	"community-board/internal/transport/http/middleware"
	"community-board/internal/transport/http/response"
)

type AdminHandler struct {
	admin *app.AdminService
}

func NewAdminHandler(admin *app.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	users, err := h.admin.ListUsers(c.Request.Context(), middleware.SessionFrom(c), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, gin.H{"users": users})
}

func (h *AdminHandler) ListPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	posts, err := h.admin.ListPosts(c.Request.Context(), middleware.SessionFrom(c), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, gin.H{"posts": posts})
}

func (h *AdminHandler) ListMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	messages, err := h.admin.ListMessages(c.Request.Context(), middleware.SessionFrom(c), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, gin.H{"messages": messages})
}

func (h *AdminHandler) ToggleBan(c *gin.Context) {
	userID := c.Param("id")
	banned, err := h.admin.ToggleBan(c.Request.Context(), middleware.SessionFrom(c), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, gin.H{"banned": banned})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")
	if err := h.admin.DeleteUser(c.Request.Context(), middleware.SessionFrom(c), userID); err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AdminHandler) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}
	if err := h.admin.DeletePost(c.Request.Context(), middleware.SessionFrom(c), uint(postID)); err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AdminHandler) DeleteMessage(c *gin.Context) {
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid message id")
		return
	}
	if err := h.admin.DeleteMessage(c.Request.Context(), middleware.SessionFrom(c), uint(messageID)); err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, nil)
}
