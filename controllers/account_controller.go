package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumra-http-service/internal/error/code"
	"lumra-http-service/internal/error/response"
	"lumra-http-service/models"
	"lumra-http-service/services"
	"lumra-http-service/services/container"
)

// InterfaceAccountController 定义账号控制器接口
type InterfaceAccountController interface {
	SignupElderly()
	SignupGuardian()
	Login()
}

// AccountController 处理账号相关的请求
type AccountController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAccountController 创建一个新的账号控制器
func NewAccountController(ctx *gin.Context, container *container.ServiceContainer) *AccountController {
	return &AccountController{
		Ctx:       ctx,
		Container: container,
	}
}

// ElderlySignupRequest 表示老人注册请求
type ElderlySignupRequest struct {
	Name     string `json:"name" binding:"required" example:"Lakshmi Devi"`
	Age      int    `json:"age" binding:"required,gte=1,lte=149" example:"72"`
	Gender   string `json:"gender" binding:"required" example:"female"`
	Phone    string `json:"phone" binding:"required,min=7,max=15" example:"5550001"`
	Address  string `json:"address" binding:"required" example:"12 Lake View Road"`
	Medical  string `json:"medical" example:"diabetic, on insulin"`
	Guardian string `json:"guardian" binding:"required" example:"Karthika"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Confirm  string `json:"confirm" binding:"required,min=6" example:"secret123"`
}

// GuardianSignupRequest 表示监护人注册请求
type GuardianSignupRequest struct {
	Name     string `json:"name" binding:"required" example:"Karthika S"`
	Email    string `json:"email" binding:"required,email" example:"karthika@example.com"`
	Phone    string `json:"phone" binding:"required,min=7,max=15" example:"5559999"`
	Address  string `json:"address" binding:"required" example:"45 Hill Street"`
	Relation string `json:"relation" binding:"required" example:"daughter"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	Confirm  string `json:"confirm" binding:"required,min=6" example:"secret123"`
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"5550001"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// SignupElderly 注册老人账号
// @Summary      老人注册
// @Description  创建新的老人账号，手机号作为登录账号全局唯一
// @Tags         Account
// @Accept       json
// @Produce      json
// @Param        request body ElderlySignupRequest true "老人注册信息"
// @Success      200  {object}  map[string]interface{} "成功响应，包含新账号ID"
// @Failure      400  {object}  response.Response "密码不一致或手机号已注册"
// @Failure      500  {object}  response.Response "服务器错误"
// @Router       /elderly/signup [post]
func (c *AccountController) SignupElderly() {
	var req ElderlySignupRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	elderly := &models.Elderly{
		Name:     req.Name,
		Age:      req.Age,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Address:  req.Address,
		Medical:  req.Medical,
		Guardian: req.Guardian,
		Password: req.Password, // 密码在模型钩子中哈希
	}

	accountService := c.Container.GetService("account").(services.InterfaceAccountService)
	if err := accountService.SignupElderly(elderly, req.Confirm); err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			response.Fail(c.Ctx, code.ErrPasswordMismatch, nil)
		case errors.Is(err, services.ErrPhoneTaken):
			response.Fail(c.Ctx, code.ErrPhoneTaken, nil)
		default:
			response.ServerError(c.Ctx)
		}
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s signed up successfully.", elderly.Name),
		"id":      elderly.ID,
	})
}

// SignupGuardian 注册监护人账号
// @Summary      监护人注册
// @Description  创建新的监护人账号，邮箱与手机号均需唯一
// @Tags         Account
// @Accept       json
// @Produce      json
// @Param        request body GuardianSignupRequest true "监护人注册信息"
// @Success      200  {object}  map[string]interface{} "成功响应，包含新账号ID"
// @Failure      400  {object}  response.Response "密码不一致、邮箱或手机号已注册"
// @Failure      500  {object}  response.Response "服务器错误"
// @Router       /guardian/signup [post]
func (c *AccountController) SignupGuardian() {
	var req GuardianSignupRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	guardian := &models.Guardian{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Relation: req.Relation,
		Password: req.Password, // 密码在模型钩子中哈希
	}

	accountService := c.Container.GetService("account").(services.InterfaceAccountService)
	if err := accountService.SignupGuardian(guardian, req.Confirm); err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			response.Fail(c.Ctx, code.ErrPasswordMismatch, nil)
		case errors.Is(err, services.ErrEmailTaken):
			response.Fail(c.Ctx, code.ErrEmailTaken, nil)
		case errors.Is(err, services.ErrPhoneTaken):
			response.Fail(c.Ctx, code.ErrPhoneTaken, nil)
		default:
			response.ServerError(c.Ctx)
		}
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Guardian %s signed up successfully.", guardian.Name),
		"id":      guardian.ID,
	})
}

// Login 处理用户登录
// @Summary      用户登录
// @Description  用手机号+密码登录，先按老人账号匹配，再按监护人账号匹配，返回角色、用户ID与JWT令牌
// @Tags         Account
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录凭证"
// @Success      200  {object}  map[string]interface{} "成功响应，包含role、user_id、token"
// @Failure      401  {object}  response.Response "用户名或密码错误"
// @Failure      500  {object}  response.Response "服务器错误"
// @Router       /login [post]
func (c *AccountController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	accountService := c.Container.GetService("account").(services.InterfaceAccountService)
	role, userID, err := accountService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(c.Ctx, code.ErrInvalidCredentials, nil)
		} else {
			response.ServerError(c.Ctx)
		}
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(userID, role)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"role":    role,
		"user_id": userID,
		"token":   token,
	})
}

// HandleAccountFunc 返回一个处理账号请求的Gin处理函数
func HandleAccountFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAccountController(ctx, container)

		switch method {
		case "signupElderly":
			controller.SignupElderly()
		case "signupGuardian":
			controller.SignupGuardian()
		case "login":
			controller.Login()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
