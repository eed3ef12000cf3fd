package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetShipmentSummary(c *gin.Context) {
	resp, err := s.summarySvc.Summarize(c.Request.Context(), c.Param("reference"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
