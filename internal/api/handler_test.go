package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"repair-workshop-backend/config"
	"repair-workshop-backend/internal/advice"
	"repair-workshop-backend/internal/docs"
	"repair-workshop-backend/internal/model"
	"repair-workshop-backend/internal/notification"
	"repair-workshop-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	facade *store.Facade
	pool   *notification.WorkerPool
}

// newTestEnv wires a full router over an offline facade rooted at a temp
// dir. The notification pool is created but never started, so dispatched
// jobs stay observable on its channel.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	local, err := store.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	facade := store.NewFacade(func(ctx context.Context) (*gorm.DB, error) {
		return nil, context.DeadlineExceeded
	}, local)
	require.NoError(t, facade.Initialize(context.Background()))

	pool := notification.NewWorkerPool(4, facade, &webpush.Options{})
	handler := NewHandler(
		facade,
		advice.NewClient(&config.AdviceConfig{TimeoutSeconds: 1}),
		docs.NewBuilder(config.WorkshopConfig{Name: "Volt Service", Master: "P. Sidorov"}),
		pool,
		&webpush.Options{VAPIDPublicKey: "test-public-key"},
	)
	router := NewRouter(handler, RouterConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTL:        time.Minute,
	})
	return &testEnv{router: router, facade: facade, pool: pool}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestDeviceIntakeAndList(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/devices", gin.H{
		"clientName":       "Ivanov",
		"deviceModel":      "Vacuum X1",
		"issueDescription": "Does not power on",
		"urgency":          "high",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.StatusReceived, created.Status)
	assert.Equal(t, model.UrgencyHigh, created.Urgency)

	w = env.do(t, http.MethodGet, "/api/devices", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Vacuum X1", listed[0].DeviceModel)
}

func TestDeviceIntakeValidation(t *testing.T) {
	env := newTestEnv(t)

	for name, body := range map[string]gin.H{
		"missing client name":  {"deviceModel": "Vacuum X1"},
		"missing device model": {"clientName": "Ivanov"},
		"unknown status":       {"clientName": "Ivanov", "deviceModel": "Vacuum X1", "status": "lost"},
	} {
		t.Run(name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/devices", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	w := env.do(t, http.MethodGet, "/api/devices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String(), "rejected intakes must not create records")
}

func TestDeviceUpdateToReadyDispatchesNotification(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/devices", gin.H{"clientName": "Ivanov", "deviceModel": "Vacuum X1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodPut, "/api/devices/"+created.ID, gin.H{
		"clientName":  "Ivanov",
		"deviceModel": "Vacuum X1",
		"status":      "ready",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, model.StatusReady, updated.Status)
	assert.True(t, updated.StatusChangedAt.After(created.StatusChangedAt))

	select {
	case id := <-env.pool.Jobs():
		assert.Equal(t, created.ID, id)
	case <-time.After(time.Second):
		t.Fatal("expected a device-ready notification job")
	}

	// A second save in Ready must not dispatch again.
	w = env.do(t, http.MethodPut, "/api/devices/"+created.ID, gin.H{
		"clientName":  "Ivanov",
		"deviceModel": "Vacuum X1",
		"status":      "ready",
		"notes":       "shelved",
	})
	require.Equal(t, http.StatusOK, w.Code)
	select {
	case <-env.pool.Jobs():
		t.Fatal("no job expected when the device was already ready")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeviceDelete(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/devices", gin.H{"clientName": "Ivanov", "deviceModel": "Vacuum X1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/devices/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/devices/absent-id", nil).Code,
		"deleting an absent id is a no-op")

	w = env.do(t, http.MethodGet, "/api/devices", nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestPartDefaultsOnIntake(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/parts", gin.H{"name": "10uF cap", "type": "capacitor"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.SparePart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.Quantity, "quantity defaults to 1 when omitted")
	assert.True(t, created.InStock)

	// An explicit zero survives.
	w = env.do(t, http.MethodPut, "/api/parts/"+created.ID, gin.H{
		"name": "10uF cap", "type": "capacitor", "quantity": 0, "inStock": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.SparePart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 0, updated.Quantity)
	assert.False(t, updated.InStock)
}

func TestPartsExport(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/parts", gin.H{"name": "1N4007", "type": "diode", "quantity": 40})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/parts/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inventory-")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestStatusEndpointReportsMode(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mode":"offline","offline":true}`, w.Body.String())
}

func TestDocumentEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/devices", gin.H{"clientName": "Ivanov", "deviceModel": "Vacuum X1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	for _, kind := range []string{"receipt", "act", "seal"} {
		t.Run(kind, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/api/devices/"+created.ID+"/documents/"+kind, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
			assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
		})
	}

	assert.Equal(t, http.StatusNotFound,
		env.do(t, http.MethodGet, "/api/devices/absent-id/documents/receipt", nil).Code)
	assert.Equal(t, http.StatusNotFound,
		env.do(t, http.MethodGet, "/api/devices/"+created.ID+"/documents/invoice", nil).Code)
}

func TestAdviceEndpointAlwaysAnswers(t *testing.T) {
	env := newTestEnv(t)

	// No endpoint configured: the client answers with its fallback text.
	w := env.do(t, http.MethodPost, "/api/advice", gin.H{"prompt": "TV has no backlight"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, advice.FallbackMessage, resp["advice"])

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/advice", gin.H{}).Code)
}

func TestPartCatalogEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/catalog/parts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Types    []string            `json:"types"`
		Subtypes map[string][]string `json:"subtypes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Types, "capacitor")
	assert.Contains(t, resp.Subtypes["capacitor"], "electrolytic")
}

func TestSubscriptionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusBadRequest,
		env.do(t, http.MethodPut, "/api/subscriptions", gin.H{"endpoint": "https://push/a"}).Code,
		"p256dh and auth are required")

	w := env.do(t, http.MethodPut, "/api/subscriptions", gin.H{
		"endpoint": "https://push/a", "p256dh": "key", "auth": "auth",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/subscriptions?endpoint=https://push/a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subscribed":true}`, w.Body.String())

	require.Equal(t, http.StatusNoContent,
		env.do(t, http.MethodDelete, "/api/subscriptions", gin.H{"endpoint": "https://push/a"}).Code)

	assert.Equal(t, http.StatusNotFound,
		env.do(t, http.MethodGet, "/api/subscriptions?endpoint=https://push/a", nil).Code)
}

func TestVAPIDPublicKeyEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/vapid_public_key", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"public_key":"test-public-key"}`, w.Body.String())
}

func TestWriteInvalidatesListCache(t *testing.T) {
	env := newTestEnv(t)

	// Prime the cache with an empty list.
	w := env.do(t, http.MethodGet, "/api/parts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = env.do(t, http.MethodPost, "/api/parts", gin.H{"name": "fuse 2A", "type": "fuse", "quantity": 10})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/parts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var parts []model.SparePart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parts))
	require.Len(t, parts, 1, "a successful write must flush the cached list")
	assert.Equal(t, "fuse 2A", parts[0].Name)
}
