package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
)

func (s *Server) CreateCategory(c *gin.Context) {
	var req catalogdomain.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCategories(c *gin.Context) {
	resp, err := s.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req catalogdomain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Kind = strings.TrimSpace(req.Kind)

	resp, err := s.catalogSvc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req catalogdomain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.catalogSvc.DeleteProduct(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) GetProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.GetProduct(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	req := catalogdomain.ListProductsRequest{
		Kind:           strings.TrimSpace(c.Query("kind")),
		OrganizationID: strings.TrimSpace(c.Query("organization_id")),
	}
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		active := raw == "true"
		req.Active = &active
	}

	resp, err := s.catalogSvc.ListProducts(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateVariant(c *gin.Context) {
	var req catalogdomain.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.SKU = strings.TrimSpace(req.SKU)
	req.Name = strings.TrimSpace(req.Name)

	resp, err := s.catalogSvc.CreateVariant(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListVariants(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.ListVariants(c.Request.Context(), productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddCompatibleAccessory(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))

	var req struct {
		AccessoryProductID string `json:"accessory_product_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.catalogSvc.AddCompatibleAccessory(c.Request.Context(), productID, strings.TrimSpace(req.AccessoryProductID)); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "linked"})
}

func (s *Server) ListCompatibleAccessories(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.ListCompatibleAccessories(c.Request.Context(), productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
