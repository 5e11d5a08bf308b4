package controllers

import (
	"comandero/entity"
	"comandero/pkg/resp"
	"comandero/services"
	"comandero/utils"

	"github.com/gin-gonic/gin"
)

type DispatchController struct {
	Service *services.DispatchService
}

func NewDispatchController(service *services.DispatchService) *DispatchController {
	return &DispatchController{Service: service}
}

// Board serves the station snapshot; clients that want push instead connect
// to /ws/dispatch.
func (ctl *DispatchController) Board(c *gin.Context) {
	restaurantID, ok := queryID(c, "restaurantId")
	if !ok {
		return
	}
	board, err := ctl.Service.Columns(restaurantID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, board)
}

type moveItemReq struct {
	OrderID uint              `json:"orderId" binding:"required"`
	ItemID  uint              `json:"itemId" binding:"required"`
	Status  entity.ItemStatus `json:"status" binding:"required"`
}

func (ctl *DispatchController) MoveItem(c *gin.Context) {
	var req moveItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Service.MoveItem(utils.CurrentUserID(c), req.OrderID, req.ItemID, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, item)
}
