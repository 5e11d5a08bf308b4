package controllers

import (
	"strconv"

	"comandero/pkg/resp"
	"comandero/services"
	"comandero/utils"

	"github.com/gin-gonic/gin"
)

type ShiftController struct {
	Service *services.ShiftService
}

func NewShiftController(service *services.ShiftService) *ShiftController {
	return &ShiftController{Service: service}
}

func (ctl *ShiftController) Open(c *gin.Context) {
	var req services.OpenShiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	shift, err := ctl.Service.Open(utils.CurrentUserID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, shift)
}

func (ctl *ShiftController) Close(c *gin.Context) {
	shiftID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.CloseShiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	shift, err := ctl.Service.Close(utils.CurrentUserID(c), shiftID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, shift)
}

func (ctl *ShiftController) Current(c *gin.Context) {
	restaurantID, ok := queryID(c, "restaurantId")
	if !ok {
		return
	}
	shift, err := ctl.Service.Current(restaurantID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, shift)
}

func (ctl *ShiftController) List(c *gin.Context) {
	restaurantID, ok := queryID(c, "restaurantId")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	shifts, err := ctl.Service.List(restaurantID, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, shifts)
}
