package controllers

import (
	"errors"
	"net/http"

	"comandero/entity"
	"comandero/pkg/resp"
	"comandero/services"
	"comandero/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Service *services.PaymentService
}

func NewPaymentController(service *services.PaymentService) *PaymentController {
	return &PaymentController{Service: service}
}

func (ctl *PaymentController) Apply(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.ApplyPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	payment, err := ctl.Service.Apply(utils.CurrentUserID(c), orderID, req)
	if err != nil {
		// The payment settled but the stock deduction is pending; report the
		// payment with the reconciliation warning instead of failing.
		if errors.Is(err, services.ErrDeductionFailed) && payment != nil {
			c.JSON(http.StatusCreated, gin.H{"ok": true, "data": payment, "warning": err.Error()})
			return
		}
		writeServiceError(c, err)
		return
	}
	resp.Created(c, payment)
}

type setPaymentStatusReq struct {
	Status entity.PaymentStatus `json:"status" binding:"required"`
}

func (ctl *PaymentController) SetStatus(c *gin.Context) {
	paymentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req setPaymentStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	payment, err := ctl.Service.SetStatus(utils.CurrentUserID(c), paymentID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrDeductionFailed) && payment != nil {
			c.JSON(http.StatusOK, gin.H{"ok": true, "data": payment, "warning": err.Error()})
			return
		}
		writeServiceError(c, err)
		return
	}
	resp.OK(c, payment)
}

func (ctl *PaymentController) Delete(c *gin.Context) {
	paymentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Service.Delete(utils.CurrentUserID(c), paymentID); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": paymentID})
}

func (ctl *PaymentController) ListByOrder(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	payments, err := ctl.Service.ListByOrder(orderID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, payments)
}

func (ctl *PaymentController) Outstanding(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	balance, err := ctl.Service.Outstanding(orderID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, balance)
}
