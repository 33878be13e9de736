package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
)

// brandedPricingErrorMessage translates resolver failures into the exact
// strings the storefront configurator renders inline.
func brandedPricingErrorMessage(err error) (int, string, bool) {
	switch {
	case errors.Is(err, pricingdomain.ErrMissingParameters):
		return http.StatusBadRequest, "Size and quantity are required", true
	case errors.Is(err, pricingdomain.ErrBelowMinimumOrder):
		return http.StatusBadRequest, "Quantity below minimum order", true
	case errors.Is(err, pricingdomain.ErrNoPricingFound):
		return http.StatusNotFound, "No pricing found for this configuration", true
	default:
		return 0, "", false
	}
}

func (s *Server) BrandedPricing(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	size := strings.TrimSpace(c.Query("size"))
	quantity, _ := strconv.Atoi(strings.TrimSpace(c.Query("quantity")))

	quote, err := s.pricingSvc.Calculate(c.Request.Context(), productID, size, quantity)
	if err != nil {
		if status, msg, ok := brandedPricingErrorMessage(err); ok {
			c.JSON(status, gin.H{"success": false, "error": msg})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"price_per_unit": quote.UnitPrice.String(),
		"total_price":    quote.TotalPrice.String(),
		"quantity":       quote.Quantity,
		"case_quantity":  quote.CaseQuantity,
		"cases_needed":   quote.CasesNeeded,
	})
}

func (s *Server) BrandedOptions(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))

	sizes, err := s.pricingSvc.AvailableSizes(c.Request.Context(), productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tiers := make(map[string][]int, len(sizes))
	for _, size := range sizes {
		thresholds, err := s.pricingSvc.AvailableQuantities(c.Request.Context(), productID, size)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		tiers[size] = thresholds
	}

	c.JSON(http.StatusOK, gin.H{
		"sizes":          sizes,
		"quantity_tiers": tiers,
	})
}

func (s *Server) CreatePricingTier(c *gin.Context) {
	var req pricingdomain.CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.ProductID = strings.TrimSpace(req.ProductID)
	req.Size = strings.TrimSpace(req.Size)

	resp, err := s.pricingSvc.CreateTier(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPricingTiers(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	resp, err := s.pricingSvc.ListTiers(c.Request.Context(), productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePricingTier(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.pricingSvc.DeleteTier(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
