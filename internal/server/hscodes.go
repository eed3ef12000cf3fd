package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	hscodedomain "github.com/marmaralog/brokerage/internal/hscode/domain"
)

func (s *Server) CreateHSCode(c *gin.Context) {
	var req hscodedomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hscodeSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListHSCodes(c *gin.Context) {
	var query struct {
		Code    string `form:"code"`
		SortBy  string `form:"sort_by"`
		OrderBy string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hscodeSvc.List(c.Request.Context(), hscodedomain.ListRequest{
		Code:    strings.TrimSpace(query.Code),
		SortBy:  query.SortBy,
		OrderBy: query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetHSCode(c *gin.Context) {
	resp, err := s.hscodeSvc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateHSCode(c *gin.Context) {
	var req hscodedomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hscodeSvc.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ListCountryCodes serves the numeric declaration codes used on customs
// forms, keyed by ISO alpha-2 country.
func (s *Server) ListCountryCodes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": hscodedomain.DeclarationCountryCodes()})
}
