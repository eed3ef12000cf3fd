package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
)

func (s *Server) CreateShipment(c *gin.Context) {
	var req shipmentdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.shipmentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListShipments(c *gin.Context) {
	var query struct {
		Status  string `form:"status"`
		SortBy  string `form:"sort_by"`
		OrderBy string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.shipmentSvc.List(c.Request.Context(), shipmentdomain.ListRequest{
		Status:  strings.TrimSpace(query.Status),
		SortBy:  query.SortBy,
		OrderBy: query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetShipment(c *gin.Context) {
	resp, err := s.shipmentSvc.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateShipmentStatus(c *gin.Context) {
	var req struct {
		Status shipmentdomain.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.shipmentSvc.UpdateStatus(c.Request.Context(), c.Param("reference"), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
