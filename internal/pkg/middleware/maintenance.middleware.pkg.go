package middleware

import (
	"net/http"
	"strings"

	config "github.com/Baru2006/EasyRecharge-MM/configs"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/gin-gonic/gin"
)

// SiteSource returns the current site document.
type SiteSource func() config.SiteConfig

// Maintenance answers 503 with the maintenance message and support link
// while the site document has maintenance on. Paths with an exempt prefix
// always pass.
func Maintenance(site SiteSource, exempt ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range exempt {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		s := site()
		if !s.Maintenance {
			c.Next()
			return
		}

		c.Header("Retry-After", "600")
		Send(c)(&types.Response{
			Code:    http.StatusServiceUnavailable,
			Message: s.Message,
			Data: gin.H{
				"maintenance":  true,
				"message":      s.Message,
				"telegramLink": s.TelegramLink,
			},
		})
	}
}
