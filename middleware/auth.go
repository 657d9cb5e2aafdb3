package middleware

import (
	"hotelpms/policy"
	"hotelpms/response"
	"hotelpms/services"

	"github.com/gin-gonic/gin"
)

const (
	ActorIDKey   = "actorID"
	ActorRoleKey = "actorRole"
)

// Authenticator xác thực token và kiểm tra quyền theo resource/action
type Authenticator struct {
	secret  string
	checker policy.Checker
}

func NewAuthenticator(secret string, checker policy.Checker) *Authenticator {
	return &Authenticator{secret: secret, checker: checker}
}

// AuthMiddleware xử lý authentication và authorization
func (a *Authenticator) AuthMiddleware(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := services.ParseActorToken(authHeader, a.secret)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if !a.checker.Allowed(claims.Role, resource, action) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		// Lưu thông tin actor vào context
		c.Set(ActorIDKey, claims.Subject)
		c.Set(ActorRoleKey, claims.Role)
		c.Next()
	}
}

// ActorID actor id đã xác thực, rỗng nếu route không qua AuthMiddleware
func ActorID(c *gin.Context) string {
	return c.GetString(ActorIDKey)
}
