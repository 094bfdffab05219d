package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrForbidden - 403: 无权访问该资源.
	ErrForbidden
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase
)

// 账号相关错误码 (101xxx).
const (
	// ErrElderlyNotFound - 404: 老人账号不存在.
	ErrElderlyNotFound int = iota + 101000
	// ErrGuardianNotFound - 404: 监护人账号不存在.
	ErrGuardianNotFound
	// ErrPasswordMismatch - 400: 两次输入的密码不一致.
	ErrPasswordMismatch
	// ErrPhoneTaken - 400: 手机号已注册.
	ErrPhoneTaken
	// ErrEmailTaken - 400: 邮箱已注册.
	ErrEmailTaken
	// ErrInvalidCredentials - 401: 用户名或密码错误.
	ErrInvalidCredentials
)

// 连接请求相关错误码 (102xxx).
const (
	// ErrRequestNotFound - 404: 连接请求不存在.
	ErrRequestNotFound int = iota + 102000
	// ErrRequestDuplicate - 400: 该监护人与老人之间已存在请求.
	ErrRequestDuplicate
	// ErrRequestProcessed - 400: 请求已被处理.
	ErrRequestProcessed
	// ErrInvalidAction - 400: 无效的处理动作.
	ErrInvalidAction
)

// 围栏与位置相关错误码 (103xxx).
const (
	// ErrGeofenceNotFound - 404: 未设置安全围栏.
	ErrGeofenceNotFound int = iota + 103000
	// ErrLocationNotFound - 404: 暂无位置记录.
	ErrLocationNotFound
)
