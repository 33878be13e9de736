package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	cartdomain "github.com/servewell/storefront/internal/cart/domain"
)

func (s *Server) GetCart(c *gin.Context) {
	resp, err := s.cartSvc.EnsureCart(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddStandardLine(c *gin.Context) {
	var req cartdomain.AddStandardLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.SKU = strings.TrimSpace(req.SKU)

	resp, err := s.cartSvc.AddStandardLine(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddConfiguredLine(c *gin.Context) {
	var req cartdomain.AddConfiguredLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.ProductID = strings.TrimSpace(req.ProductID)
	req.DesignAssetID = strings.TrimSpace(req.DesignAssetID)

	resp, err := s.cartSvc.AddConfiguredLine(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCartLine(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.cartSvc.UpdateLineQuantity(c.Request.Context(), id, req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveCartLine(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.cartSvc.RemoveLine(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
