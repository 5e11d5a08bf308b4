package repository

import (
	"comandero/entity"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) Get(tableID uint) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.First(&t, tableID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) List(restaurantID uint) ([]entity.Table, error) {
	var out []entity.Table
	err := r.DB.Where("restaurant_id = ?", restaurantID).Order("number ASC").Find(&out).Error
	return out, err
}

func (r *TableRepository) Create(t *entity.Table) error {
	return r.DB.Create(t).Error
}

func (r *TableRepository) SetStatus(tx *gorm.DB, tableID uint, status string) error {
	return tx.Model(&entity.Table{}).Where("id = ?", tableID).Update("status", status).Error
}
