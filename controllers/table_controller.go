package controllers

import (
	"comandero/entity"
	"comandero/pkg/resp"
	"comandero/repository"

	"github.com/gin-gonic/gin"
)

type TableController struct {
	Repo *repository.TableRepository
}

func NewTableController(repo *repository.TableRepository) *TableController {
	return &TableController{Repo: repo}
}

func (ctl *TableController) List(c *gin.Context) {
	restaurantID, ok := queryID(c, "restaurantId")
	if !ok {
		return
	}
	tables, err := ctl.Repo.List(restaurantID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, tables)
}

type createTableReq struct {
	RestaurantID uint `json:"restaurantId" binding:"required"`
	Number       int  `json:"number" binding:"required"`
	Seats        int  `json:"seats"`
}

func (ctl *TableController) Create(c *gin.Context) {
	var req createTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	t := entity.Table{
		Number:       req.Number,
		Seats:        req.Seats,
		Status:       entity.TableFree,
		RestaurantID: req.RestaurantID,
	}
	if err := ctl.Repo.Create(&t); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, t)
}
