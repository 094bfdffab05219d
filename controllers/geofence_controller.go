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

// InterfaceGeofenceController 定义围栏控制器接口
type InterfaceGeofenceController interface {
	SetGeofence()
	GetGeofence()
}

// GeofenceController 处理安全围栏相关的请求
type GeofenceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewGeofenceController 创建一个新的围栏控制器
func NewGeofenceController(ctx *gin.Context, container *container.ServiceContainer) *GeofenceController {
	return &GeofenceController{
		Ctx:       ctx,
		Container: container,
	}
}

// SetGeofenceRequest 表示设置围栏请求。
// 纬度/经度使用指针以区分"未提供"与合法的0值（赤道/本初子午线）。
type SetGeofenceRequest struct {
	ElderlyID uint     `json:"elderly_id" binding:"required" example:"1"`
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90" example:"13.0827"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180" example:"80.2707"`
	Radius    float64  `json:"radius" binding:"required,gt=0" example:"200"`
}

// SetGeofence 设置或更新老人的安全围栏
// @Summary      设置安全围栏
// @Description  为老人设置圆形安全区域（中心+半径，米）；已存在时原地更新
// @Tags         Geofence
// @Accept       json
// @Produce      json
// @Param        request body SetGeofenceRequest true "围栏参数"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  response.Response "仅本人或已连接监护人可设置"
// @Failure      404  {object}  response.Response "老人账号不存在"
// @Router       /geofence/set [post]
func (c *GeofenceController) SetGeofence() {
	var req SetGeofenceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	if !middleware.CanAccessElderly(c.Ctx, req.ElderlyID) {
		response.Forbidden(c.Ctx)
		return
	}

	geofenceService := c.Container.GetService("geofence").(services.InterfaceGeofenceService)
	created, err := geofenceService.SetGeofence(req.ElderlyID, *req.Latitude, *req.Longitude, req.Radius)
	if err != nil {
		if errors.Is(err, services.ErrElderlyNotFound) {
			response.Fail(c.Ctx, code.ErrElderlyNotFound, nil)
		} else {
			response.ServerError(c.Ctx)
		}
		return
	}

	message := "Geofence updated successfully."
	if created {
		message = "Geofence set successfully."
	}
	c.Ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// GetGeofence 获取老人当前的安全围栏
// @Summary      查询安全围栏
// @Description  返回老人当前生效的围栏（中心与半径）
// @Tags         Geofence
// @Produce      json
// @Param        elderly_id path int true "老人ID"
// @Security     BearerAuth
// @Success      200  {object}  models.Geofence
// @Failure      403  {object}  response.Response "仅本人或已连接监护人可查看"
// @Failure      404  {object}  response.Response "未设置围栏"
// @Router       /geofence/{elderly_id} [get]
func (c *GeofenceController) GetGeofence() {
	elderlyID, err := strconv.ParseUint(c.Ctx.Param("elderly_id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "invalid elderly id")
		return
	}

	geofenceService := c.Container.GetService("geofence").(services.InterfaceGeofenceService)
	fence, err := geofenceService.GetGeofence(uint(elderlyID))
	if err != nil {
		if errors.Is(err, services.ErrGeofenceNotFound) {
			response.Fail(c.Ctx, code.ErrGeofenceNotFound, nil)
		} else {
			response.ServerError(c.Ctx)
		}
		return
	}

	c.Ctx.JSON(http.StatusOK, fence)
}

// HandleGeofenceFunc 返回一个处理围栏请求的Gin处理函数
func HandleGeofenceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewGeofenceController(ctx, container)

		switch method {
		case "setGeofence":
			controller.SetGeofence()
		case "getGeofence":
			controller.GetGeofence()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
