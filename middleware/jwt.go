package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lumra-http-service/config"
	"lumra-http-service/internal/error/response"
	"lumra-http-service/services"
)

// contextClaimsKey 认证通过后JWT声明在请求上下文中的键
const contextClaimsKey = "claims"

var (
	jwtService     services.InterfaceJWTService
	requestService services.InterfaceRequestService
)

// InitAuthMiddleware 初始化认证中间件。
// requestService 用于监护人访问老人数据时的连接关系校验。
func InitAuthMiddleware(cfg *config.Config, reqSvc services.InterfaceRequestService) {
	jwtService = services.NewJWTService(cfg)
	requestService = reqSvc
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// Authenticate 校验Bearer令牌并把声明写入请求上下文
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(extractToken(authHeader))
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext 取出认证中间件写入的JWT声明，未认证时返回nil
func ClaimsFromContext(c *gin.Context) *services.JWTClaims {
	value, exists := c.Get(contextClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*services.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// CanAccessElderly 判断当前调用方是否可以访问指定老人的数据：
// 老人本人，或与其存在已接受连接的监护人。
func CanAccessElderly(c *gin.Context, elderlyID uint) bool {
	claims := ClaimsFromContext(c)
	if claims == nil {
		return false
	}

	switch claims.Role {
	case services.RoleElderly:
		return claims.UserID == elderlyID
	case services.RoleGuardian:
		accepted, err := requestService.IsGuardianAccepted(claims.UserID, elderlyID)
		if err != nil {
			config.Error("连接关系校验失败: %v", err)
			return false
		}
		return accepted
	}
	return false
}

// ElderlyDataAccess 保护以老人ID为路径参数的读取接口：
// 仅老人本人或已接受连接的监护人可访问。
func ElderlyDataAccess(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		elderlyID, err := parseIDParam(c, param)
		if err != nil {
			response.ParamError(c, "invalid elderly id")
			c.Abort()
			return
		}

		if !CanAccessElderly(c, elderlyID) {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSelf 保护以用户自身ID为路径参数的接口：路径ID必须与令牌一致，
// 且角色必须为 role。
func RequireSelf(role, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseIDParam(c, param)
		if err != nil {
			response.ParamError(c, "invalid user id")
			c.Abort()
			return
		}

		claims := ClaimsFromContext(c)
		if claims == nil || claims.Role != role || claims.UserID != userID {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func parseIDParam(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
