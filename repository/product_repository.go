package repository

import (
	"comandero/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Get(productID uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.First(&p, productID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(restaurantID uint) ([]entity.Product, error) {
	var out []entity.Product
	err := r.DB.Where("restaurant_id = ?", restaurantID).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.DB.Create(p).Error
}

func (r *ProductRepository) Update(productID uint, updates map[string]any) error {
	return r.DB.Model(&entity.Product{}).Where("id = ?", productID).Updates(updates).Error
}

// UpdateStock rewrites the cached balance. Runs inside the same transaction
// that appends the movement, so ledger and cache stay atomic.
func (r *ProductRepository) UpdateStock(tx *gorm.DB, productID uint, balance decimal.Decimal) error {
	return tx.Model(&entity.Product{}).Where("id = ?", productID).Update("stock", balance).Error
}

func (r *ProductRepository) UpdateCost(tx *gorm.DB, productID uint, cost decimal.Decimal) error {
	return tx.Model(&entity.Product{}).Where("id = ?", productID).Update("cost", cost).Error
}
