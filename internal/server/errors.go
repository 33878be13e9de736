package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	assetdomain "github.com/servewell/storefront/internal/asset/domain"
	cartdomain "github.com/servewell/storefront/internal/cart/domain"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	instancedomain "github.com/servewell/storefront/internal/instance/domain"
	orderdomain "github.com/servewell/storefront/internal/order/domain"
	organizationdomain "github.com/servewell/storefront/internal/organization/domain"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{Field: "request", Code: "invalid_request", Message: "invalid request"},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var invalidParams *instancedomain.InvalidParametersError
	if errors.As(err, &invalidParams) {
		fields := make([]ValidationError, 0, len(invalidParams.Fields))
		for _, f := range invalidParams.Fields {
			fields = append(fields, ValidationError{
				Field:   "request",
				Code:    "invalid_parameters",
				Message: f,
			})
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  fields,
		}
	}

	var creationFailed *instancedomain.CreationFailedError
	if errors.As(err, &creationFailed) {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "creation_failed",
			Message: creationFailed.Message,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: "request", Code: code, Message: code},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isOrganizationValidationError(err),
		isCatalogValidationError(err),
		isPricingValidationError(err),
		isCartValidationError(err),
		isAssetValidationError(err),
		isOrderValidationError(err),
		isInstanceValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, organizationdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, pricingdomain.ErrNotFound),
		errors.Is(err, assetdomain.ErrNotFound),
		errors.Is(err, cartdomain.ErrNotFound),
		errors.Is(err, cartdomain.ErrLineNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrLineNotFound),
		errors.Is(err, instancedomain.ErrLineNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, catalogdomain.ErrDuplicateSKU),
		errors.Is(err, catalogdomain.ErrDuplicateSlug),
		errors.Is(err, pricingdomain.ErrDuplicateTier),
		errors.Is(err, organizationdomain.ErrHasInstanceProducts),
		errors.Is(err, orderdomain.ErrStalePrice),
		errors.Is(err, instancedomain.ErrAlreadyConverted):
		return true
	default:
		return false
	}
}

func isOrganizationValidationError(err error) bool {
	switch err {
	case organizationdomain.ErrInvalidName,
		organizationdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isCatalogValidationError(err error) bool {
	switch err {
	case catalogdomain.ErrInvalidName,
		catalogdomain.ErrInvalidKind,
		catalogdomain.ErrInvalidCategory,
		catalogdomain.ErrInvalidSKU,
		catalogdomain.ErrInvalidPrice,
		catalogdomain.ErrInvalidStock,
		catalogdomain.ErrInvalidPackSize,
		catalogdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isPricingValidationError(err error) bool {
	switch err {
	case pricingdomain.ErrMissingParameters,
		pricingdomain.ErrBelowMinimumOrder,
		pricingdomain.ErrNoPricingFound,
		pricingdomain.ErrInvalidProduct,
		pricingdomain.ErrInvalidSize,
		pricingdomain.ErrInvalidThreshold,
		pricingdomain.ErrInvalidUnitPrice,
		pricingdomain.ErrInvalidCaseQuantity,
		pricingdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isCartValidationError(err error) bool {
	switch err {
	case cartdomain.ErrInvalidQuantity,
		cartdomain.ErrInvalidSKU,
		cartdomain.ErrInvalidUnitPrice,
		cartdomain.ErrInvalidProduct,
		cartdomain.ErrInvalidID,
		cartdomain.ErrMissingConfiguration,
		cartdomain.ErrMissingDesign,
		cartdomain.ErrVariantInactive,
		cartdomain.ErrOutOfStock:
		return true
	default:
		return false
	}
}

func isAssetValidationError(err error) bool {
	switch err {
	case assetdomain.ErrEmptyFile,
		assetdomain.ErrInvalidFilename,
		assetdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isOrderValidationError(err error) bool {
	switch err {
	case orderdomain.ErrNoUser,
		orderdomain.ErrEmptyCart,
		orderdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isInstanceValidationError(err error) bool {
	switch err {
	case instancedomain.ErrInvalidID,
		instancedomain.ErrNotConfigured,
		instancedomain.ErrNoOrganization:
		return true
	default:
		return false
	}
}
