package middleware

import (
	"net/http"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
	SendKey         = "send"
)

// RequestInit tags every request with an id, reusing the caller's when sent.
func RequestInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// ResponseInit installs the "send" closure handlers use to render a
// types.Response. Sending aborts the chain.
func ResponseInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(SendKey, func(r *types.Response) {
			r = helper.ParseResponse(r)
			if r.Code >= http.StatusInternalServerError {
				logger.Error.Printf("[%s] %s %s: %v", c.GetString(RequestIDKey), c.Request.Method, c.FullPath(), r.Error)
			} else if r.Error != nil {
				logger.Debug.Printf("[%s] %s %s: %v", c.GetString(RequestIDKey), c.Request.Method, c.FullPath(), r.Error)
			}

			c.AbortWithStatusJSON(r.Code, types.ResponseAPI{
				Status:  r.Code,
				Message: r.Message,
				Data:    r.Data,
				Error:   helper.ToFault(r.Error),
			})
		})
		c.Next()
	}
}

// Send fetches the closure installed by ResponseInit.
func Send(c *gin.Context) func(r *types.Response) {
	return c.MustGet(SendKey).(func(r *types.Response))
}
