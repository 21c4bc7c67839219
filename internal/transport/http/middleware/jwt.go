package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mentorpath/internal/pkg/jwtutil"
	"mentorpath/internal/transport/http/response"
)

const (
	memberIDKey   = "mentorpath.member_id"
	memberNameKey = "mentorpath.member_name"

	// accessTokenParam lets plain links, such as attachment downloads opened
	// in a new tab, carry the token without an Authorization header.
	accessTokenParam = "access_token"
)

// RequireMember admits requests carrying a valid mentorpath token and stores
// the member on the context.
func RequireMember(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, message := bearerToken(c)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, message)
			c.Abort()
			return
		}

		claims, err := jwtutil.ParseToken(secret, raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(memberIDKey, claims.UserID)
		c.Set(memberNameKey, claims.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, string) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		if token := strings.TrimSpace(c.Query(accessTokenParam)); token != "" && c.Request.Method == http.MethodGet {
			return token, ""
		}
		return "", "missing authorization header"
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", "invalid authorization scheme"
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix)), "empty bearer token"
}

// MemberID returns the authenticated member, if RequireMember ran.
func MemberID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(memberIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok && id != 0
}

func MemberName(c *gin.Context) string {
	return c.GetString(memberNameKey)
}
