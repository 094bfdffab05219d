package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lumra-http-service/internal/error/code"
	"lumra-http-service/internal/error/response"
	"lumra-http-service/middleware"
	"lumra-http-service/services"
	"lumra-http-service/services/container"
)

// InterfaceRequestController 定义连接请求控制器接口
type InterfaceRequestController interface {
	CreateRequest()
	GetPendingRequests()
	RespondRequest()
	GetElderlies()
	GetGuardians()
}

// RequestController 处理监护人-老人连接请求
type RequestController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRequestController 创建一个新的连接请求控制器
func NewRequestController(ctx *gin.Context, container *container.ServiceContainer) *RequestController {
	return &RequestController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateConnectionRequest 表示发起连接请求
type CreateConnectionRequest struct {
	ElderlyPhone string `json:"elderly_phone" binding:"required" example:"5550001"`
	GuardianID   uint   `json:"guardian_id" binding:"required" example:"3"`
}

// RespondConnectionRequest 表示处理连接请求
type RespondConnectionRequest struct {
	RequestID uint   `json:"request_id" binding:"required" example:"11"`
	Action    string `json:"action" binding:"required" example:"accept"`
}

// CreateRequest 监护人按老人手机号发起连接请求
// @Summary      发起连接请求
// @Description  监护人向指定手机号的老人发起连接请求，同一配对只允许一条请求
// @Tags         Request
// @Accept       json
// @Produce      json
// @Param        request body CreateConnectionRequest true "连接请求信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "成功响应，包含request_id"
// @Failure      400  {object}  response.Response "重复请求"
// @Failure      403  {object}  response.Response "只能以本人的监护人身份发起"
// @Failure      404  {object}  response.Response "老人手机号不存在"
// @Router       /guardian/request [post]
func (c *RequestController) CreateRequest() {
	var req CreateConnectionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	// 只能以本人的监护人身份发起请求
	claims := middleware.ClaimsFromContext(c.Ctx)
	if claims == nil || claims.Role != services.RoleGuardian || claims.UserID != req.GuardianID {
		response.Forbidden(c.Ctx)
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	request, err := requestService.CreateRequest(req.GuardianID, req.ElderlyPhone)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrElderlyNotFound):
			response.Fail(c.Ctx, code.ErrElderlyNotFound, nil)
		case errors.Is(err, services.ErrRequestDuplicate):
			response.Fail(c.Ctx, code.ErrRequestDuplicate, nil)
		default:
			response.ServerError(c.Ctx)
		}
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"message":    "Request sent successfully.",
		"request_id": request.ID,
	})
}

// GetPendingRequests 获取老人待处理的连接请求
// @Summary      待处理请求列表
// @Description  返回指定老人所有状态为requested的连接请求，含监护人姓名
// @Tags         Request
// @Produce      json
// @Param        id path int true "老人ID"
// @Security     BearerAuth
// @Success      200  {array}   services.PendingRequest
// @Failure      403  {object}  response.Response "仅老人本人可查看"
// @Router       /elderly/{id}/requests [get]
func (c *RequestController) GetPendingRequests() {
	elderlyID, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "invalid elderly id")
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	requests, err := requestService.ListPendingRequests(uint(elderlyID))
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	c.Ctx.JSON(http.StatusOK, requests)
}

// RespondRequest 老人接受或拒绝连接请求
// @Summary      处理连接请求
// @Description  老人对requested状态的请求做一次性的accept/reject处理，处理后状态为终态
// @Tags         Request
// @Accept       json
// @Produce      json
// @Param        request body RespondConnectionRequest true "处理动作"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  response.Response "无效动作或请求已被处理"
// @Failure      403  {object}  response.Response "仅老人账号可处理"
// @Failure      404  {object}  response.Response "请求不存在"
// @Router       /elderly/request/respond [post]
func (c *RequestController) RespondRequest() {
	var req RespondConnectionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	claims := middleware.ClaimsFromContext(c.Ctx)
	if claims == nil || claims.Role != services.RoleElderly {
		response.Forbidden(c.Ctx)
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	status, err := requestService.RespondToRequest(req.RequestID, claims.UserID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			response.Fail(c.Ctx, code.ErrInvalidAction, nil)
		case errors.Is(err, services.ErrRequestNotFound):
			response.Fail(c.Ctx, code.ErrRequestNotFound, nil)
		case errors.Is(err, services.ErrRequestProcessed):
			response.Fail(c.Ctx, code.ErrRequestProcessed, nil)
		default:
			response.ServerError(c.Ctx)
		}
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"message": "Request " + status + ".",
	})
}

// GetElderlies 获取监护人已连接的老人列表
// @Summary      已连接老人列表
// @Description  返回与指定监护人存在已接受连接的全部老人
// @Tags         Request
// @Produce      json
// @Param        id path int true "监护人ID"
// @Security     BearerAuth
// @Success      200  {array}   services.AcceptedElderly
// @Failure      403  {object}  response.Response "仅监护人本人可查看"
// @Router       /guardian/{id}/elderlies [get]
func (c *RequestController) GetElderlies() {
	guardianID, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "invalid guardian id")
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	elderlies, err := requestService.ListAcceptedElderlies(uint(guardianID))
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	c.Ctx.JSON(http.StatusOK, elderlies)
}

// GetGuardians 获取老人已连接的监护人列表
// @Summary      已连接监护人列表
// @Description  返回与指定老人存在已接受连接的监护人，最多7条
// @Tags         Request
// @Produce      json
// @Param        id path int true "老人ID"
// @Security     BearerAuth
// @Success      200  {array}   services.AcceptedGuardian
// @Failure      403  {object}  response.Response "仅本人或已连接监护人可查看"
// @Router       /elderly/{id}/guardians [get]
func (c *RequestController) GetGuardians() {
	elderlyID, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "invalid elderly id")
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	guardians, err := requestService.ListAcceptedGuardians(uint(elderlyID))
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	c.Ctx.JSON(http.StatusOK, guardians)
}

// HandleRequestFunc 返回一个处理连接请求的Gin处理函数
func HandleRequestFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRequestController(ctx, container)

		switch method {
		case "createRequest":
			controller.CreateRequest()
		case "getPendingRequests":
			controller.GetPendingRequests()
		case "respondRequest":
			controller.RespondRequest()
		case "getElderlies":
			controller.GetElderlies()
		case "getGuardians":
			controller.GetGuardians()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
