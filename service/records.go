package service

import (
	"errors"

	"field-service-api/models"
	"field-service-api/repository"
	"field-service-api/storage"

	"go.uber.org/zap"
)

// RecordLedger creates, lists, assembles and deletes service records. The
// location fields on a record are a snapshot taken at creation time and are
// never joined live against the location table.
type RecordLedger struct {
	records repository.RecordRepository
	photos  repository.PhotoRepository
	users   repository.UserRepository
	store   *storage.Store
	log     *zap.Logger
}

// NewRecordLedger wires the ledger over its repositories and the attachment
// store.
func NewRecordLedger(
	records repository.RecordRepository,
	photos repository.PhotoRepository,
	users repository.UserRepository,
	store *storage.Store,
	log *zap.Logger,
) *RecordLedger {
	return &RecordLedger{
		records: records,
		photos:  photos,
		users:   users,
		store:   store,
		log:     log,
	}
}

// RecordDetail is a record plus its photo locators split by phase, each list
// in creation order.
type RecordDetail struct {
	models.Record
	BeforePhotos []string `json:"before_photos"`
	AfterPhotos  []string `json:"after_photos"`
}

// Create validates that the operator exists and persists the record. The
// location snapshot fields are stored exactly as supplied.
func (l *RecordLedger) Create(rec *models.Record) error {
	if _, err := l.users.GetByID(rec.OperatorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOperatorNotFound
		}
		return err
	}
	return l.records.Create(rec)
}

// List returns records newest first, optionally filtered by the denormalized
// location city.
func (l *RecordLedger) List(city string) ([]models.Record, error) {
	return l.records.List(city)
}

// Detail loads a record and partitions its photos into before/after lists by
// normalized phase.
func (l *RecordLedger) Detail(id uint) (*RecordDetail, error) {
	rec, err := l.records.GetByID(id)
	if err != nil {
		return nil, err
	}
	photos, err := l.photos.ListByRecord(id)
	if err != nil {
		return nil, err
	}
	detail := &RecordDetail{
		Record:       *rec,
		BeforePhotos: []string{},
		AfterPhotos:  []string{},
	}
	for _, p := range photos {
		switch p.Phase {
		case models.PhaseBefore:
			detail.BeforePhotos = append(detail.BeforePhotos, p.URLPath)
		case models.PhaseAfter:
			detail.AfterPhotos = append(detail.AfterPhotos, p.URLPath)
		}
	}
	return detail, nil
}

// Delete removes a record together with its photos and their backing files.
// Per photo: best-effort file removal, then the row; a file that cannot be
// removed (or whose locator escapes the attachment root) is logged and
// skipped, never blocking the rest of the cascade. The record row goes last.
func (l *RecordLedger) Delete(id uint) error {
	if _, err := l.records.GetByID(id); err != nil {
		return err
	}
	photos, err := l.photos.ListByRecord(id)
	if err != nil {
		return err
	}
	for _, p := range photos {
		if err := l.store.Remove(p.URLPath); err != nil {
			l.log.Warn("failed to remove photo file",
				zap.Uint("photo_id", p.ID),
				zap.String("url_path", p.URLPath),
				zap.Error(err))
		}
		if err := l.photos.Delete(p.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	return l.records.Delete(id)
}
