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

// InterfaceLocationController 定义位置控制器接口
type InterfaceLocationController interface {
	UpdateLocation()
	GetLatestLocation()
	GetLocationHistory()
}

// LocationController 处理位置上报与查询请求
type LocationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewLocationController 创建一个新的位置控制器
func NewLocationController(ctx *gin.Context, container *container.ServiceContainer) *LocationController {
	return &LocationController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateLocationRequest 表示位置上报请求。
// 纬度/经度使用指针以区分"未提供"与合法的0值。
type UpdateLocationRequest struct {
	ElderlyID uint     `json:"elderly_id" binding:"required" example:"1"`
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90" example:"13.0830"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180" example:"80.2710"`
}

// UpdateLocation 上报一次定位并返回围栏判定
// @Summary      位置上报
// @Description  记录老人的一次定位，对照安全围栏判定是否在界内；未设置围栏时恒为界内且不返回距离
// @Tags         Location
// @Accept       json
// @Produce      json
// @Param        request body UpdateLocationRequest true "定位坐标"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "inside、distance_meters（无围栏时省略）与message"
// @Failure      403  {object}  response.Response "仅老人本人设备可上报"
// @Router       /location/update [post]
func (c *LocationController) UpdateLocation() {
	var req UpdateLocationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	// 位置只能由老人本人的设备上报
	claims := middleware.ClaimsFromContext(c.Ctx)
	if claims == nil || claims.Role != services.RoleElderly || claims.UserID != req.ElderlyID {
		response.Forbidden(c.Ctx)
		return
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	status, err := locationService.RecordLocation(req.ElderlyID, *req.Latitude, *req.Longitude)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	body := gin.H{"inside": status.Inside}
	switch {
	case status.Distance == nil:
		body["message"] = "Location recorded. No geofence set."
	case status.Inside:
		body["distance_meters"] = *status.Distance
		body["message"] = "Location recorded. Inside safe zone."
	default:
		body["distance_meters"] = *status.Distance
		body["message"] = "Location recorded. Outside safe zone!"
	}
	c.Ctx.JSON(http.StatusOK, body)
}

// GetLatestLocation 查询老人的最近一次定位
// @Summary      最近位置
// @Description  返回老人最近一次上报的定位（优先读缓存）
// @Tags         Location
// @Produce      json
// @Param        elderly_id path int true "老人ID"
// @Security     BearerAuth
// @Success      200  {object}  models.ElderlyLocation
// @Failure      403  {object}  response.Response "仅本人或已连接监护人可查看"
// @Failure      404  {object}  response.Response "暂无位置记录"
// @Router       /location/{elderly_id}/latest [get]
func (c *LocationController) GetLatestLocation() {
	elderlyID, err := strconv.ParseUint(c.Ctx.Param("elderly_id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "invalid elderly id")
		return
	}

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	loc, err := locationService.GetLatestLocation(uint(elderlyID))
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			response.Fail(c.Ctx, code.ErrLocationNotFound, nil)
		} else {
			response.ServerError(c.Ctx)
		}
		return
	}

	c.Ctx.JSON(http.StatusOK, loc)
}

// GetLocationHistory 查询老人的位置历史
// @Summary      位置历史
// @Description  按时间倒序返回老人的位置记录，limit默认50、上限500
// @Tags         Location
// @Produce      json
// @Param        elderly_id path int true "老人ID"
// @Param        limit query int false "返回条数"
// @Security     BearerAuth
// @Success      200  {array}   models.ElderlyLocation
// @Failure      403  {object}  response.Response "仅本人或已连接监护人可查看"
// @Router       /location/{elderly_id}/history [get]
func (c *LocationController) GetLocationHistory() {
	elderlyID, err := strconv.ParseUint(c.Ctx.Param("elderly_id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "invalid elderly id")
		return
	}

	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "0"))

	locationService := c.Container.GetService("location").(services.InterfaceLocationService)
	locations, err := locationService.ListLocationHistory(uint(elderlyID), limit)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	c.Ctx.JSON(http.StatusOK, locations)
}

// HandleLocationFunc 返回一个处理位置请求的Gin处理函数
func HandleLocationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewLocationController(ctx, container)

		switch method {
		case "updateLocation":
			controller.UpdateLocation()
		case "getLatestLocation":
			controller.GetLatestLocation()
		case "getLocationHistory":
			controller.GetLocationHistory()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
