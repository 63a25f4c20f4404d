package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"community-board/internal/app"
	"community-board/internal/transport/http/middleware"
	"community-board/internal/transport/http/response"
)

type MessageHandler struct {
	messages *app.MessageService
}

type SendMessageRequest struct {
	To      string `json:"to" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func NewMessageHandler(messages *app.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	session := middleware.SessionFrom(c)
	if err := h.messages.Send(c.Request.Context(), session, req.To, req.Content); err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *MessageHandler) Inbox(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	result, err := h.messages.ListInbox(c.Request.Context(), middleware.SessionFrom(c), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, result)
}
