package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) PutDraft(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		AbortWithError(c, invalidRequestError())
		return
	}
	if !json.Valid(body) {
		AbortWithError(c, newValidationError("body", "invalid_body", "draft body must be json"))
		return
	}

	key := strings.TrimSpace(c.Param("key"))
	if err := s.drafts.Put(c.Request.Context(), key, body); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"key": key}})
}

func (s *Server) GetDraft(c *gin.Context) {
	value, err := s.drafts.Get(c.Request.Context(), strings.TrimSpace(c.Param("key")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", value)
}

func (s *Server) DeleteDraft(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if err := s.drafts.Delete(c.Request.Context(), key); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"key": key}})
}
