package controllers

import (
	"errors"
	"strconv"

	"comandero/entity"
	"comandero/pkg/resp"
	"comandero/services"
	"comandero/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

func (ctl *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := ctl.Service.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, order)
}

func (ctl *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := ctl.Service.Detail(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

func (ctl *OrderController) List(c *gin.Context) {
	restaurantID, ok := queryID(c, "restaurantId")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	status := entity.OrderStatus(c.Query("status"))

	orders, err := ctl.Service.ListForRestaurant(restaurantID, status, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, orders)
}

func (ctl *OrderController) AddItem(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.OrderItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Service.AddItem(utils.CurrentUserID(c), orderID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, item)
}

func (ctl *OrderController) RemoveItem(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	if err := ctl.Service.RemoveItem(utils.CurrentUserID(c), orderID, itemID); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": itemID})
}

type setStatusReq struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
}

func (ctl *OrderController) SetStatus(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := ctl.Service.SetStatus(utils.CurrentUserID(c), orderID, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

type setItemStatusReq struct {
	Status entity.ItemStatus `json:"status" binding:"required"`
}

func (ctl *OrderController) SetItemStatus(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var req setItemStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Service.SetItemStatus(utils.CurrentUserID(c), orderID, itemID, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, item)
}

type setDiscountReq struct {
	Discount decimal.Decimal `json:"discount"`
}

func (ctl *OrderController) SetDiscount(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req setDiscountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := ctl.Service.SetDiscount(utils.CurrentUserID(c), orderID, req.Discount)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

// RetryDeduction re-runs a settlement stock deduction that was left pending.
func (ctl *OrderController) RetryDeduction(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := ctl.Service.RetryDeduction(utils.CurrentUserID(c), orderID)
	if err != nil {
		if errors.Is(err, services.ErrDeductionFailed) {
			resp.Unprocessable(c, err.Error())
			return
		}
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}
