package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
)

func (s *Server) ReplaceLineItems(c *gin.Context) {
	var req struct {
		Items []allocationdomain.LineItemInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.allocationSvc.ReplaceLineItems(c.Request.Context(), c.Param("reference"), req.Items)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLineItems(c *gin.Context) {
	resp, err := s.allocationSvc.ListLineItems(c.Request.Context(), c.Param("reference"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpsertAllocationConfig(c *gin.Context) {
	var req allocationdomain.ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.allocationSvc.UpsertConfig(c.Request.Context(), c.Param("reference"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAllocationConfig(c *gin.Context) {
	resp, err := s.allocationSvc.GetConfig(c.Request.Context(), c.Param("reference"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Allocate(c *gin.Context) {
	var req allocationdomain.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.allocationSvc.Allocate(c.Request.Context(), c.Param("reference"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAllocationResults(c *gin.Context) {
	resp, err := s.allocationSvc.ListResults(c.Request.Context(), c.Param("reference"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
