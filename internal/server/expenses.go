package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	expensedomain "github.com/marmaralog/brokerage/internal/expense/domain"
)

func (s *Server) CreateImportExpense(c *gin.Context) {
	var req expensedomain.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.expenseSvc.CreateExpense(c.Request.Context(), c.Param("reference"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListImportExpenses(c *gin.Context) {
	resp, err := s.expenseSvc.ListExpenses(c.Request.Context(), c.Param("reference"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteImportExpense(c *gin.Context) {
	if err := s.expenseSvc.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) CreateServiceInvoice(c *gin.Context) {
	var req expensedomain.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.expenseSvc.CreateInvoice(c.Request.Context(), c.Param("reference"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListServiceInvoices(c *gin.Context) {
	resp, err := s.expenseSvc.ListInvoices(c.Request.Context(), c.Param("reference"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteServiceInvoice(c *gin.Context) {
	if err := s.expenseSvc.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
