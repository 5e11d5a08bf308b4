package controllers

import (
	"comandero/entity"
	"comandero/pkg/resp"
	"comandero/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	Repo *repository.ProductRepository
}

func NewProductController(repo *repository.ProductRepository) *ProductController {
	return &ProductController{Repo: repo}
}

func (ctl *ProductController) List(c *gin.Context) {
	restaurantID, ok := queryID(c, "restaurantId")
	if !ok {
		return
	}
	products, err := ctl.Repo.List(restaurantID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, products)
}

type createProductReq struct {
	RestaurantID uint            `json:"restaurantId" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Cost         decimal.Decimal `json:"cost"`
	TrackStock   bool            `json:"trackStock"`
}

func (ctl *ProductController) Create(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p := entity.Product{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Cost:         req.Cost,
		TrackStock:   req.TrackStock,
		Active:       true,
		RestaurantID: req.RestaurantID,
	}
	if err := ctl.Repo.Create(&p); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, p)
}

type updateProductReq struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Active   *bool            `json:"active"`
}

// Update edits the catalog entry. Orders are untouched: items carry their
// own name/price snapshots.
func (ctl *ProductController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}
	if err := ctl.Repo.Update(id, updates); err != nil {
		writeServiceError(c, err)
		return
	}
	p, err := ctl.Repo.Get(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, p)
}
