package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"community-board/internal/app"
	"community-board/internal/transport/http/middleware"
	"community-board/internal/transport/http/response"
)

type PostHandler struct {
	posts *app.PostService
}

type CreatePostRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	GameTypes string `json:"game_types"`
}

func NewPostHandler(posts *app.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	views, err := h.posts.List(c.Request.Context(), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, gin.H{"posts": views})
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	session := middleware.SessionFrom(c)
	if err := h.posts.Create(c.Request.Context(), session, req.Title, req.Content, req.GameTypes); err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}

	session := middleware.SessionFrom(c)
	if err := h.posts.Delete(c.Request.Context(), session, uint(postID)); err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, nil)
}
