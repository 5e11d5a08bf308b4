package controllers

import (
	"strconv"

	"comandero/pkg/resp"
	"comandero/services"
	"comandero/utils"

	"github.com/gin-gonic/gin"
)

type StockController struct {
	Service *services.StockService
}

func NewStockController(service *services.StockService) *StockController {
	return &StockController{Service: service}
}

func (ctl *StockController) RecordMovement(c *gin.Context) {
	var req services.RecordMovementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	movement, err := ctl.Service.RecordMovement(utils.CurrentUserID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, movement)
}

func (ctl *StockController) Balance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	balance, err := ctl.Service.CurrentBalance(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, balance)
}

func (ctl *StockController) History(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	movements, err := ctl.Service.History(id, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, movements)
}
