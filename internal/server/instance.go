package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	instancedomain "github.com/servewell/storefront/internal/instance/domain"
)

func (s *Server) CreateInstanceProduct(c *gin.Context) {
	var req instancedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.OrderLineID = strings.TrimSpace(c.Param("id"))
	req.ProductName = strings.TrimSpace(req.ProductName)
	req.SKU = strings.TrimSpace(req.SKU)

	resp, err := s.instanceSvc.CreateInstanceProduct(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
