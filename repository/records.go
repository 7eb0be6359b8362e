package repository

import (
	"field-service-api/models"

	"gorm.io/gorm"
)

type gormRecordRepository struct {
	db *gorm.DB
}

// NewRecordRepository returns a gorm-backed RecordRepository.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &gormRecordRepository{db: db}
}

func (r *gormRecordRepository) Create(rec *models.Record) error {
	return r.db.Create(rec).Error
}

func (r *gormRecordRepository) GetByID(id uint) (*models.Record, error) {
	var rec models.Record
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

// List returns records newest first. A non-empty city matches the
// denormalized location_city column exactly.
func (r *gormRecordRepository) List(city string) ([]models.Record, error) {
	query := r.db.Order("id desc")
	if city != "" {
		query = query.Where("location_city = ?", city)
	}
	var records []models.Record
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gormRecordRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Record{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
