package code

// 错误码消息映射（客户端为英文界面，对外消息统一使用英文）
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "success",
	ErrUnknown:         "internal server error",
	ErrBind:            "invalid request parameters",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "invalid or missing token",
	ErrForbidden:       "access to this resource is not allowed",
	ErrTooManyRequests: "too many requests, please try again later",
	ErrDatabase:        "database error",

	// 账号相关错误码
	ErrElderlyNotFound:    "elderly not found",
	ErrGuardianNotFound:   "guardian not found",
	ErrPasswordMismatch:   "passwords do not match",
	ErrPhoneTaken:         "phone already registered",
	ErrEmailTaken:         "email already registered",
	ErrInvalidCredentials: "invalid username or password",

	// 连接请求相关错误码
	ErrRequestNotFound:  "request not found",
	ErrRequestDuplicate: "request already exists for this elderly",
	ErrRequestProcessed: "request already processed",
	ErrInvalidAction:    "action must be 'accept' or 'reject'",

	// 围栏与位置相关错误码
	ErrGeofenceNotFound: "no geofence set for this elderly",
	ErrLocationNotFound: "no location recorded for this elderly",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrForbidden:       StatusForbidden,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrDatabase:        StatusInternalServerError,

	// 账号相关错误码
	ErrElderlyNotFound:    StatusNotFound,
	ErrGuardianNotFound:   StatusNotFound,
	ErrPasswordMismatch:   StatusBadRequest,
	ErrPhoneTaken:         StatusBadRequest,
	ErrEmailTaken:         StatusBadRequest,
	ErrInvalidCredentials: StatusUnauthorized,

	// 连接请求相关错误码
	ErrRequestNotFound:  StatusNotFound,
	ErrRequestDuplicate: StatusBadRequest,
	ErrRequestProcessed: StatusBadRequest,
	ErrInvalidAction:    StatusBadRequest,

	// 围栏与位置相关错误码
	ErrGeofenceNotFound: StatusNotFound,
	ErrLocationNotFound: StatusNotFound,
}

// GetMessage 返回错误码对应的消息
func GetMessage(errorCode int) string {
	if msg, ok := codeMessageMap[errorCode]; ok {
		return msg
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 返回错误码对应的HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
