package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	taxcalcdomain "github.com/marmaralog/brokerage/internal/taxcalc/domain"
)

func (s *Server) ComputeTaxCalculation(c *gin.Context) {
	var req taxcalcdomain.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxcalcSvc.Compute(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTaxCalculation(c *gin.Context) {
	resp, err := s.taxcalcSvc.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
