package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"field-service-api/auth"
	"field-service-api/config"
	"field-service-api/handlers"
	"field-service-api/middleware"
	"field-service-api/models"
	"field-service-api/repository"
	"field-service-api/routes"
	"field-service-api/service"
	"field-service-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router *gin.Engine
	users  repository.UserRepository
	store  *storage.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(":memory:")
	require.NoError(t, err)

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret: []byte("test-secret"),
		TokenTTL:  time.Hour,
	}

	users := repository.NewUserRepository(db)
	locations := repository.NewLocationRepository(db)
	records := repository.NewRecordRepository(db)
	photos := repository.NewPhotoRepository(db)

	ledger := service.NewRecordLedger(records, photos, users, store, zap.NewNop())
	pipeline := service.NewPhotoPipeline(records, photos, store)
	guard := middleware.NewGuard(cfg.JWTSecret, users)
	handler := handlers.New(cfg, users, locations, ledger, pipeline, zap.NewNop())

	router := gin.New()
	routes.Setup(router, handler, guard)
	return &testServer{router: router, users: users, store: store}
}

func (ts *testServer) seedUser(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{Email: email, Name: "Test", Role: role, PasswordHash: hash}
	require.NoError(t, ts.users.Create(u))
	return u
}

func (ts *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	w := ts.do(t, http.MethodPost, "/api/auth/login", "", bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestLogin_JSONChannel(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "op@example.com", "pass123", models.RoleOperator)

	ts.login(t, "op@example.com", "pass123")
}

func TestLogin_FormChannel(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "op@example.com", "pass123", models.RoleOperator)

	form := url.Values{"email": {"op@example.com"}, "password": {"pass123"}}
	w := ts.do(t, http.MethodPost, "/api/auth/login", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestLogin_QueryChannel(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "op@example.com", "pass123", models.RoleOperator)

	w := ts.do(t, http.MethodPost, "/api/auth/login?email=op@example.com&password=pass123", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestLogin_IncompleteChannelFallsThrough(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "op@example.com", "pass123", models.RoleOperator)

	// JSON body carries only the email; the query carries a full pair, so the
	// query channel wins.
	body, _ := json.Marshal(map[string]string{"email": "someone@else.com"})
	w := ts.do(t, http.MethodPost, "/api/auth/login?email=op@example.com&password=pass123", "",
		bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestLogin_FieldsNeverMergedAcrossChannels(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "op@example.com", "pass123", models.RoleOperator)

	// email in the body, password in the query: no single channel has both
	body, _ := json.Marshal(map[string]string{"email": "op@example.com"})
	w := ts.do(t, http.MethodPost, "/api/auth/login?password=pass123", "",
		bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestLogin_MissingCredentials(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/auth/login", "", nil, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLogin_UniformUnauthorized(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "op@example.com", "pass123", models.RoleOperator)

	wrongPass := ts.do(t, http.MethodPost, "/api/auth/login?email=op@example.com&password=nope", "", nil, "")
	unknownEmail := ts.do(t, http.MethodPost, "/api/auth/login?email=ghost@example.com&password=pass123", "", nil, "")

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// identical response either way, no account enumeration
	require.Equal(t, wrongPass.Body.String(), unknownEmail.Body.String())
}

func TestMe_ReturnsCallerIdentity(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "op@example.com", "pass123", models.RoleOperator)
	token := ts.login(t, "op@example.com", "pass123")

	w := ts.do(t, http.MethodGet, "/api/auth/me", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	decodeJSON(t, w, &got)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, models.RoleOperator, got.Role)
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuth_DeletedUserLosesAccess(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "op@example.com", "pass123", models.RoleOperator)
	token := ts.login(t, "op@example.com", "pass123")

	require.NoError(t, ts.users.Delete(user.ID))

	w := ts.do(t, http.MethodGet, "/api/auth/me", token, nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "op@example.com", "pass123", models.RoleOperator)
	token := ts.login(t, "op@example.com", "pass123")

	body, _ := json.Marshal(map[string]string{
		"email": "new@example.com", "name": "New", "password": "pass123",
	})

	noToken := ts.do(t, http.MethodPost, "/api/users", "", bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusUnauthorized, noToken.Code)

	operator := ts.do(t, http.MethodPost, "/api/users", token, bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusForbidden, operator.Code)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	token := ts.login(t, "admin@example.com", "admin123")

	body, _ := json.Marshal(map[string]string{
		"email": "admin@example.com", "name": "Dup", "password": "pass123", "role": "OPERATOR",
	})
	w := ts.do(t, http.MethodPost, "/api/users", token, bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	token := ts.login(t, "admin@example.com", "admin123")

	body, _ := json.Marshal(map[string]string{
		"email": "x@example.com", "name": "X", "password": "pass123", "role": "SUPERVISOR",
	})
	w := ts.do(t, http.MethodPost, "/api/users", token, bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestUpdateUser_PartialFieldsOnly(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	token := ts.login(t, "admin@example.com", "admin123")

	target := ts.seedUser(t, "op@example.com", "pass123", models.RoleOperator)

	body, _ := json.Marshal(map[string]string{"name": "Renamed"})
	w := ts.do(t, http.MethodPut, "/api/users/"+itoa(target.ID), token, bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := ts.users.GetByID(target.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, "op@example.com", got.Email)
	require.Equal(t, models.RoleOperator, got.Role)
	// blank password field leaves the hash alone
	require.True(t, auth.CheckPassword("pass123", got.PasswordHash))

	w = ts.do(t, http.MethodPut, "/api/users/99999", token, bytes.NewReader([]byte(`{}`)), "application/json")
	require.Equal(t, http.StatusNotFound, w.Code)
}

// TestRecordLifecycle walks the full flow: admin creates a location, files a
// record snapshotting its city, uploads a BEFORE photo, reads the detail,
// deletes the record and finds both the row and the file gone.
func TestRecordLifecycle(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	token := ts.login(t, "admin@example.com", "admin123")

	locBody, _ := json.Marshal(map[string]string{"city": "Fortaleza", "name": "Praça Central"})
	w := ts.do(t, http.MethodPost, "/api/locations", token, bytes.NewReader(locBody), "application/json")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var loc models.Location
	decodeJSON(t, w, &loc)

	recBody, _ := json.Marshal(map[string]interface{}{
		"operator_id":   admin.ID,
		"service_type":  "capina",
		"location_id":   loc.ID,
		"location_name": loc.Name,
		"location_city": loc.City,
	})
	w = ts.do(t, http.MethodPost, "/api/records", token, bytes.NewReader(recBody), "application/json")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rec models.Record
	decodeJSON(t, w, &rec)
	require.True(t, rec.GPSUsed) // defaults on

	// multipart upload of one BEFORE photo
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("phase", "BEFORE"))
	part, err := mw.CreateFormFile("files", "before.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w = ts.do(t, http.MethodPost, "/api/records/"+itoa(rec.ID)+"/photos", token, &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var photos []models.Photo
	decodeJSON(t, w, &photos)
	require.Len(t, photos, 1)

	w = ts.do(t, http.MethodGet, "/api/records/"+itoa(rec.ID), token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail service.RecordDetail
	decodeJSON(t, w, &detail)
	require.Equal(t, []string{photos[0].URLPath}, detail.BeforePhotos)
	require.Empty(t, detail.AfterPhotos)
	require.Equal(t, "Fortaleza", *detail.LocationCity)

	w = ts.do(t, http.MethodDelete, "/api/records/"+itoa(rec.ID), token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/records/"+itoa(rec.ID), token, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadPhotos_PayloadErrors(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@example.com", "admin123", models.RoleAdmin)
	token := ts.login(t, "admin@example.com", "admin123")

	recBody, _ := json.Marshal(map[string]interface{}{
		"operator_id":  admin.ID,
		"service_type": "capina",
	})
	w := ts.do(t, http.MethodPost, "/api/records", token, bytes.NewReader(recBody), "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	var rec models.Record
	decodeJSON(t, w, &rec)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("phase", "AFTER"))
	part, err := mw.CreateFormFile("files", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w = ts.do(t, http.MethodPost, "/api/records/"+itoa(rec.ID)+"/photos", token, &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// unknown record
	var buf2 bytes.Buffer
	mw2 := multipart.NewWriter(&buf2)
	require.NoError(t, mw2.WriteField("phase", "AFTER"))
	part2, err := mw2.CreateFormFile("files", "pic.jpg")
	require.NoError(t, err)
	_, err = part2.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, mw2.Close())

	w = ts.do(t, http.MethodPost, "/api/records/99999/photos", token, &buf2, mw2.FormDataContentType())
	require.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
