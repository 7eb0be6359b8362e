package repository

import (
	"field-service-api/models"

	"gorm.io/gorm"
)

type gormPhotoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository returns a gorm-backed PhotoRepository.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &gormPhotoRepository{db: db}
}

func (r *gormPhotoRepository) Create(p *models.Photo) error {
	return r.db.Create(p).Error
}

// ListByRecord returns a record's photos in creation order.
func (r *gormPhotoRepository) ListByRecord(recordID uint) ([]models.Photo, error) {
	var photos []models.Photo
	if err := r.db.Where("record_id = ?", recordID).Order("id asc").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *gormPhotoRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Photo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
