package repository

import (
	"field-service-api/models"
)

// UserRepository defines operations on User entities.
type UserRepository interface {
	Create(u *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	Save(u *models.User) error
	Delete(id uint) error
}

// LocationRepository defines operations on Location entities.
type LocationRepository interface {
	Create(l *models.Location) error
	GetByID(id uint) (*models.Location, error)
	List() ([]models.Location, error)
	Save(l *models.Location) error
	Delete(id uint) error
}

// RecordRepository defines operations on Record entities.
type RecordRepository interface {
	Create(r *models.Record) error
	GetByID(id uint) (*models.Record, error)
	List(city string) ([]models.Record, error)
	Delete(id uint) error
}

// PhotoRepository defines operations on Photo entities.
type PhotoRepository interface {
	Create(p *models.Photo) error
	ListByRecord(recordID uint) ([]models.Photo, error)
	Delete(id uint) error
}
