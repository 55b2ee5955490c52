package middleware

import (
	"net/http"
	"strings"
	"time"

	ctxutil "Tribune/pkg/context"
	"Tribune/pkg/jwt"
	"Tribune/pkg/log"
	"Tribune/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 剩余有效期低于该值时下发新 token
const rotateBuffer = 5 * time.Minute

func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, parts[1])
		if err != nil {
			log.L.Debug("parse token failed", zap.Error(err))
			response.Abort(c, http.StatusUnauthorized, "token 无效")
			return
		}
		if claims.UserID == 0 {
			response.Abort(c, http.StatusUnauthorized, "token 无效")
			return
		}
		if jwt.ShouldRotate(claims, rotateBuffer) {
			newToken, err := jwt.GenerateToken(secret, claims.UserID, jwt.TypeAccess, time.Hour)
			if err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}
		c.Set(ctxutil.CtxUserID, claims.UserID)

		c.Next()
	}
}
