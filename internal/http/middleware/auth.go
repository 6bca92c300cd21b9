package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kikitori/kikitori-backend/internal/http/response"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

// ServiceTokenMiddleware gates the write routes behind a single static
// bearer token. The store has one trusted writer (the processing
// pipeline); there are no per-user accounts. An empty token disables the
// gate, which is how the embedded single-machine setup runs.
type ServiceTokenMiddleware struct {
	log   *logger.Logger
	token string
}

func NewServiceTokenMiddleware(log *logger.Logger, token string) *ServiceTokenMiddleware {
	mwLog := log.With("middleware", "ServiceTokenMiddleware")
	if token == "" {
		mwLog.Warn("Service token not set; write routes are unauthenticated")
	}
	return &ServiceTokenMiddleware{log: mwLog, token: token}
}

func (m *ServiceTokenMiddleware) RequireServiceToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.token == "" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		presented := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(m.token)) != 1 {
			response.RespondError(c, http.StatusUnauthorized, "invalid_service_token", fmt.Errorf("missing or invalid service token"))
			c.Abort()
			return
		}
		c.Next()
	}
}
