package service

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"field-service-api/models"
	"field-service-api/repository"
	"field-service-api/storage"
)

// MaxPhotoBytes is the per-file upload ceiling.
const MaxPhotoBytes = 10 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// PhotoPipeline validates, stores and records uploaded images against an
// existing record.
type PhotoPipeline struct {
	records repository.RecordRepository
	photos  repository.PhotoRepository
	store   *storage.Store
}

// NewPhotoPipeline wires the pipeline over its repositories and the
// attachment store.
func NewPhotoPipeline(records repository.RecordRepository, photos repository.PhotoRepository, store *storage.Store) *PhotoPipeline {
	return &PhotoPipeline{records: records, photos: photos, store: store}
}

// Attach stores a batch of uploaded files against a record and returns the
// created photos in submission order. The whole batch is validated before
// anything is written, so a size or extension failure creates neither files
// nor rows. Dimension probing is best-effort; a file whose dimensions cannot
// be read is stored with them absent.
func (p *PhotoPipeline) Attach(recordID uint, phase string, files []*multipart.FileHeader) ([]models.Photo, error) {
	if _, err := p.records.GetByID(recordID); err != nil {
		return nil, err
	}

	for _, fh := range files {
		if fh.Size > MaxPhotoBytes {
			return nil, payloadErrorf("%s too large", fh.Filename)
		}
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedExtensions[ext] {
			return nil, payloadErrorf("invalid image format")
		}
	}

	normalized := models.NormalizePhase(phase)
	saved := make([]models.Photo, 0, len(files))
	for _, fh := range files {
		contents, err := readAll(fh)
		if err != nil {
			return nil, err
		}
		urlPath, err := p.store.Save(contents, filepath.Ext(fh.Filename))
		if err != nil {
			return nil, err
		}
		width, height := storage.ProbeDimensions(contents)
		size := int64(len(contents))
		photo := models.Photo{
			RecordID: recordID,
			Phase:    normalized,
			URLPath:  urlPath,
			Width:    width,
			Height:   height,
			Bytes:    &size,
		}
		if err := p.photos.Create(&photo); err != nil {
			return nil, err
		}
		saved = append(saved, photo)
	}
	return saved, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
