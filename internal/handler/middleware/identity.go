package middleware

import (
	"strings"

	"slotbooker/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const requesterKeyContextKey = "requester_key"

// AnonymousRequester is the fallback identity. All anonymous callers
// share one exposure seed per scope, which is the intended behavior:
// no identity, no personal stickiness.
const AnonymousRequester = "anonymous"

type IdentityMiddleware struct {
	jwtService *jwt.Service
}

func NewIdentityMiddleware(jwtService *jwt.Service) *IdentityMiddleware {
	return &IdentityMiddleware{jwtService: jwtService}
}

// Resolve attaches a requester key to every request. Resolution order:
// verified bearer-token subject, X-User-Id, X-Session-Id, anonymous.
// This is identification only; nothing is authorized by it.
func (m *IdentityMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requesterKeyContextKey, m.resolveKey(c))
		c.Next()
	}
}

func (m *IdentityMiddleware) resolveKey(c *gin.Context) string {
	if m.jwtService.Enabled() {
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token := strings.TrimPrefix(auth, "Bearer ")
			if sub, err := m.jwtService.RequesterKey(token); err == nil {
				return "user:" + sub
			}
		}
	}
	if userID := strings.TrimSpace(c.GetHeader("X-User-Id")); userID != "" {
		return "user:" + userID
	}
	if sessionID := strings.TrimSpace(c.GetHeader("X-Session-Id")); sessionID != "" {
		return "session:" + sessionID
	}
	return AnonymousRequester
}

func GetRequesterKey(c *gin.Context) string {
	if v, exists := c.Get(requesterKeyContextKey); exists {
		if key, ok := v.(string); ok {
			return key
		}
	}
	return ""
}
