package httphandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resale/internal/backup"
	"resale/internal/database"
	"resale/internal/docstore"
	"resale/internal/eventbus"
	"resale/internal/security"
	"resale/internal/service"
	"resale/internal/storage"
	"resale/internal/types"
	"resale/logger"
)

func init() {
	if err := logger.InitLogger("development"); err != nil {
		panic(err)
	}
}

const testTriggerSecret = "trigger-secret"

type stubCommerce struct{}

func (stubCommerce) ListCatalogItems(context.Context) (types.ContentCategory, error) {
	return types.ContentCategory{}, nil
}
func (stubCommerce) ListThemeAssets(context.Context) (types.ContentCategory, error) {
	return types.ContentCategory{}, nil
}
func (stubCommerce) ListEmbeddedScripts(context.Context) (types.ContentCategory, error) {
	return types.ContentCategory{}, nil
}
func (stubCommerce) ListStructuredContentObjects(context.Context) (types.ContentCategory, error) {
	return types.ContentCategory{}, nil
}
func (stubCommerce) ListPublishedContent(context.Context) (types.ContentCategory, error) {
	return types.ContentCategory{}, nil
}

type testServer struct {
	server *httptest.Server
	staff  service.StaffService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := docstore.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	docs := docstore.New(db)

	tokens := security.NewTokenManager("test-secret", time.Hour)
	bus := eventbus.New()

	backups := database.NewBackupRepository(docs)
	configs := database.NewBackupConfigRepository(docs)
	builder := backup.NewBuilder(docs, backups, stubCommerce{})
	store := backup.NewStore(backups, storage.NewFileStorage(t.TempDir()), storage.TypeFS)
	lock := backup.NewLockManager(db)
	scheduler := backup.NewScheduler(configs, backups, builder, store, lock, bus)
	restorer := backup.NewRestorer(docs, store, lock)

	audit := service.NewAuditService(database.NewAuditRepository(docs))
	customers := service.NewCustomerService(database.NewCustomerRepository(docs), database.NewWishlistRepository(docs), tokens)
	staff := service.NewStaffService(database.NewStaffRepository(docs), tokens)
	catalog := service.NewCatalogService(database.NewProductRepository(docs))
	tradeIn := service.NewTradeInService(database.NewSubmissionRepository(docs), catalog, bus)
	backupSvc := service.NewBackupService(builder, store, restorer, lock, scheduler, configs, backups, audit, bus)

	handler := NewApiHandler(customers, staff, catalog, tradeIn, backupSvc, audit, tokens, testTriggerSecret)
	server := httptest.NewServer(Routes(handler))
	t.Cleanup(server.Close)

	return &testServer{server: server, staff: staff}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}, extraHeaders map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(authorizationHeader, token)
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := ts.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp, decoded
}

func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()

	password, err := ts.staff.EnsureAdmin(context.Background(), "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, password)

	resp, body := ts.do(t, http.MethodPost, "/v1/staff/login", "", types.LoginParams{
		Email:    "admin@example.com",
		Password: password,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body["data"].(map[string]interface{})["token"].(string)
}

func TestCustomerAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodPost, "/v1/auth/register", "", types.RegisterParams{
		Email:    "shopper@example.com",
		Password: "password1",
	}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// weak password rejected by validation
	resp, _ = ts.do(t, http.MethodPost, "/v1/auth/register", "", types.RegisterParams{
		Email:    "other@example.com",
		Password: "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := ts.do(t, http.MethodPost, "/v1/auth/login", "", types.LoginParams{
		Email:    "shopper@example.com",
		Password: "password1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["data"].(map[string]interface{})["token"].(string)

	// wishlist requires the customer token
	resp, _ = ts.do(t, http.MethodGet, "/v1/customers/me/wishlist", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/v1/customers/me/wishlist", token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStaffPermissionGates(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken(t)

	// create a staff account limited to backupView
	resp, _ := ts.do(t, http.MethodPost, "/v1/staff", admin, types.CreateStaffParams{
		Email:       "viewer@example.com",
		Name:        "Viewer",
		Password:    "password1",
		Permissions: []types.Permission{types.PermissionBackupView},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := ts.do(t, http.MethodPost, "/v1/staff/login", "", types.LoginParams{
		Email:    "viewer@example.com",
		Password: "password1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	viewer := body["data"].(map[string]interface{})["token"].(string)

	resp, _ = ts.do(t, http.MethodGet, "/v1/backups", viewer, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// viewer lacks backupCreate and staffManage
	resp, _ = ts.do(t, http.MethodPost, "/v1/backups", viewer, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodGet, "/v1/staff", viewer, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// a customer token never passes a staff gate
	resp, _ = ts.do(t, http.MethodPost, "/v1/auth/register", "", types.RegisterParams{
		Email:    "shopper@example.com",
		Password: "password1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = ts.do(t, http.MethodPost, "/v1/auth/login", "", types.LoginParams{
		Email:    "shopper@example.com",
		Password: "password1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	customer := body["data"].(map[string]interface{})["token"].(string)
	resp, _ = ts.do(t, http.MethodGet, "/v1/backups", customer, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBackupLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken(t)

	// seed a product so the backup has content
	resp, body := ts.do(t, http.MethodPost, "/v1/products", admin, types.CreateProductParams{
		SKU:   "SKU-1",
		Title: "Refurb Phone",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = ts.do(t, http.MethodPost, "/v1/backups", admin, types.CreateBackupParams{
		Type: types.BackupTypeFull,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	backupID := body["data"].(map[string]interface{})["id"].(string)

	resp, body = ts.do(t, http.MethodGet, "/v1/backups/"+backupID, admin, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "full", body["data"].(map[string]interface{})["type"])

	resp, _ = ts.do(t, http.MethodGet, "/v1/backups/not-a-uuid", admin, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/v1/backups/"+backupID+"/restore", admin, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodDelete, "/v1/backups/"+backupID, admin, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodDelete, "/v1/backups/"+backupID, admin, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAutoBackupTriggerAuth(t *testing.T) {
	ts := newTestServer(t)

	// no credentials
	resp, _ := ts.do(t, http.MethodPost, "/v1/backups/auto", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// wrong secret
	resp, _ = ts.do(t, http.MethodPost, "/v1/backups/auto", "", nil, map[string]string{
		triggerSecretHeader: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// shared secret
	resp, body := ts.do(t, http.MethodPost, "/v1/backups/auto", "", nil, map[string]string{
		triggerSecretHeader: testTriggerSecret,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	// scheduled-trigger marker, immediately after a run: skipped, still 200
	resp, body = ts.do(t, http.MethodPost, "/v1/backups/auto", "", nil, map[string]string{
		scheduledTriggerHeader: "1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["skipped"])
}

func TestStaffCatalogAndSubmissionLookup(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken(t)

	resp, _ := ts.do(t, http.MethodPost, "/v1/products", admin, types.CreateProductParams{
		SKU: "ph-1", Title: "Phone Pro", BasePrice: 50000, Published: true,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodPost, "/v1/products", admin, types.CreateProductParams{
		SKU: "ph-2", Title: "Phone Draft", BasePrice: 40000,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// storefront sees only published, staff sees the whole catalog
	resp, body := ts.do(t, http.MethodGet, "/v1/products", "", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)

	resp, body = ts.do(t, http.MethodGet, "/v1/staff/products", admin, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 2)

	resp, _ = ts.do(t, http.MethodGet, "/v1/staff/products", "", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/v1/auth/register", "", types.RegisterParams{
		Email: "seller@example.com", Password: "password1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = ts.do(t, http.MethodPost, "/v1/auth/login", "", types.LoginParams{
		Email: "seller@example.com", Password: "password1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	customer := body["data"].(map[string]interface{})["token"].(string)

	resp, body = ts.do(t, http.MethodPost, "/v1/tradein/submissions", customer, types.CreateSubmissionParams{
		DeviceModel: "Phone Pro", Condition: types.ConditionGood,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	submissionID := body["data"].(map[string]interface{})["id"].(string)

	resp, body = ts.do(t, http.MethodGet, "/v1/staff/tradein/submissions/"+submissionID, admin, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, submissionID, body["data"].(map[string]interface{})["id"])

	resp, _ = ts.do(t, http.MethodGet, "/v1/staff/tradein/submissions/"+uuid.NewString(), admin, nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := ts.do(t, http.MethodGet, "/v1/h", "", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["error"])
}
