package repository

import (
	"comandero/entity"

	"gorm.io/gorm"
)

type ShiftRepository struct {
	DB *gorm.DB
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{DB: db}
}

func (r *ShiftRepository) Create(tx *gorm.DB, s *entity.Shift) error {
	return tx.Create(s).Error
}

func (r *ShiftRepository) Get(shiftID uint) (*entity.Shift, error) {
	var s entity.Shift
	if err := r.DB.First(&s, shiftID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Open returns the restaurant's open shift, or gorm.ErrRecordNotFound.
func (r *ShiftRepository) Open(restaurantID uint) (*entity.Shift, error) {
	var s entity.Shift
	err := r.DB.Where("restaurant_id = ? AND status = ?", restaurantID, entity.ShiftOpen).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CloseGuard applies the closing columns only while the shift is open.
func (r *ShiftRepository) CloseGuard(tx *gorm.DB, shiftID uint, updates map[string]any) (int64, error) {
	updates["status"] = entity.ShiftClosed
	res := tx.Model(&entity.Shift{}).
		Where("id = ? AND status = ?", shiftID, entity.ShiftOpen).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *ShiftRepository) List(restaurantID uint, limit int) ([]entity.Shift, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entity.Shift
	err := r.DB.Where("restaurant_id = ?", restaurantID).
		Order("id DESC").Limit(limit).
		Find(&out).Error
	return out, err
}
