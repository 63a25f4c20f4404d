package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"community-board/internal/app"
	"community-board/internal/transport/http/response"
)

type SearchHandler struct {
	profiles *app.ProfileService
}

func NewSearchHandler(profiles *app.ProfileService) *SearchHandler {
	return &SearchHandler{profiles: profiles}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		response.OK(c, gin.H{
			"results": []app.SearchResult{},
			"prompt":  "enter a nickname",
		})
		return
	}

	results, err := h.profiles.SearchNick(c.Request.Context(), query, 50)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.OK(c, gin.H{"results": results})
}
