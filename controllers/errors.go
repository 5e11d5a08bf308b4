package controllers

import (
	"errors"
	"strconv"

	"comandero/pkg/resp"
	"comandero/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses so
// every controller answers the same way.
func writeServiceError(c *gin.Context, err error) {
	var transition *services.InvalidTransitionError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrNoOpenShift):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrOverpayment):
		resp.Unprocessable(c, err.Error())
	case errors.As(err, &transition),
		errors.Is(err, services.ErrShiftAlreadyOpen),
		errors.Is(err, services.ErrCannotCancelPaidOrder),
		errors.Is(err, services.ErrOrderNotEditable),
		errors.Is(err, services.ErrItemInPreparation),
		errors.Is(err, services.ErrBelowApprovedPayments):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || id == 0 {
		resp.BadRequest(c, name+" is required")
		return 0, false
	}
	return uint(id), true
}
