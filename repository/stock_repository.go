package repository

import (
	"comandero/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockRepository struct {
	DB *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{DB: db}
}

func (r *StockRepository) Append(tx *gorm.DB, m *entity.StockMovement) error {
	return tx.Create(m).Error
}

// SumQuantities recomputes the balance from the ledger itself. Used to
// verify or rebuild the cached product balance.
func (r *StockRepository) SumQuantities(productID uint) (decimal.Decimal, error) {
	var raw struct {
		Total decimal.Decimal
	}
	err := r.DB.Model(&entity.StockMovement{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Where("product_id = ?", productID).
		Scan(&raw).Error
	return raw.Total, err
}

func (r *StockRepository) History(productID uint, limit int) ([]entity.StockMovement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []entity.StockMovement
	err := r.DB.Where("product_id = ?", productID).
		Order("id DESC").Limit(limit).
		Find(&out).Error
	return out, err
}
