package repository

import (
	"field-service-api/models"

	"gorm.io/gorm"
)

type gormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository returns a gorm-backed LocationRepository.
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &gormLocationRepository{db: db}
}

func (r *gormLocationRepository) Create(l *models.Location) error {
	return r.db.Create(l).Error
}

func (r *gormLocationRepository) GetByID(id uint) (*models.Location, error) {
	var l models.Location
	if err := r.db.First(&l, id).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *gormLocationRepository) List() ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.Order("id desc").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *gormLocationRepository) Save(l *models.Location) error {
	return r.db.Save(l).Error
}

func (r *gormLocationRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Location{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
