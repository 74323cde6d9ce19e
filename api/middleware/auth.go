package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/surejsai/GenericProductFluxer/models"
)

// identityKey is the context key under which the caller's API key is stored.
const identityKey = "api_key"

// Auth accepts a key from either header:
//
//	X-API-Key: <key>
//	Authorization: Bearer <key>
//
// With no keys configured every request passes.
func Auth(apiKeys []string) gin.HandlerFunc {
	valid := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			valid[k] = struct{}{}
		}
	}
	if len(valid) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := requestKey(c)
		switch _, ok := valid[key]; {
		case key == "":
			abort(c, http.StatusUnauthorized, models.ErrCodeUnauthorized,
				"missing API key: send X-API-Key or Authorization: Bearer <key>")
		case !ok:
			abort(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, "invalid API key")
		default:
			c.Set(identityKey, key)
			c.Next()
		}
	}
}

func requestKey(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader("X-API-Key")); key != "" {
		return key
	}
	if bearer, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(bearer)
	}
	return ""
}
