package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/servewell/storefront/internal/shopctx"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderOrgID     = "X-Organization-Id"
	HeaderCartToken = "X-Cart-Token"
)

// ShopContext resolves the caller's identity headers into the request context.
// Authentication itself happens upstream at the gateway.
func ShopContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if raw := strings.TrimSpace(c.GetHeader(HeaderUserID)); raw != "" {
			if userID, err := snowflake.ParseString(raw); err == nil {
				ctx = shopctx.WithUserID(ctx, userID)
			}
		}
		if raw := strings.TrimSpace(c.GetHeader(HeaderOrgID)); raw != "" {
			if orgID, err := snowflake.ParseString(raw); err == nil {
				ctx = shopctx.WithOrgID(ctx, orgID)
			}
		}
		if token := strings.TrimSpace(c.GetHeader(HeaderCartToken)); token != "" {
			ctx = shopctx.WithCartToken(ctx, token)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
