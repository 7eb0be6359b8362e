package service

import (
	"bytes"
	"mime/multipart"
	"testing"

	"field-service-api/config"
	"field-service-api/models"
	"field-service-api/repository"
	"field-service-api/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	users    repository.UserRepository
	locs     repository.LocationRepository
	records  repository.RecordRepository
	photos   repository.PhotoRepository
	store    *storage.Store
	ledger   *RecordLedger
	pipeline *PhotoPipeline
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := config.OpenDB(":memory:")
	require.NoError(t, err)

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		users:   repository.NewUserRepository(db),
		locs:    repository.NewLocationRepository(db),
		records: repository.NewRecordRepository(db),
		photos:  repository.NewPhotoRepository(db),
		store:   store,
	}
	env.ledger = NewRecordLedger(env.records, env.photos, env.users, store, zap.NewNop())
	env.pipeline = NewPhotoPipeline(env.records, env.photos, store)
	return env
}

func (e *testEnv) createOperator(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: "Op", Role: models.RoleOperator, PasswordHash: "x"}
	require.NoError(t, e.users.Create(u))
	return u
}

func (e *testEnv) createRecord(t *testing.T, operatorID uint, city string) *models.Record {
	t.Helper()
	rec := &models.Record{OperatorID: operatorID, ServiceType: "capina"}
	if city != "" {
		rec.LocationCity = &city
	}
	require.NoError(t, e.ledger.Create(rec))
	return rec
}

type uploadFile struct {
	name string
	data []byte
}

// makeFileHeaders builds multipart file headers the way gin hands them to
// the pipeline, preserving submission order.
func makeFileHeaders(t *testing.T, files []uploadFile) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}
