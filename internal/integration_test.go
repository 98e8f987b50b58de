package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"repair-workshop-backend/config"
	"repair-workshop-backend/internal/advice"
	"repair-workshop-backend/internal/api"
	"repair-workshop-backend/internal/docs"
	"repair-workshop-backend/internal/model"
	"repair-workshop-backend/internal/notification"
	"repair-workshop-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, facade *store.Facade) *gin.Engine {
	t.Helper()

	pool := notification.NewWorkerPool(2, facade, &webpush.Options{})
	handler := api.NewHandler(
		facade,
		advice.NewClient(&config.AdviceConfig{TimeoutSeconds: 1}),
		docs.NewBuilder(config.WorkshopConfig{Name: "Volt Service"}),
		pool,
		&webpush.Options{},
	)
	return api.NewRouter(handler, api.RouterConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTL:        time.Minute,
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestOfflineFallbackEndToEnd drives the whole stack with an unreachable
// database: startup must fall back to the local snapshot store, writes must
// land there, and a process restart over the same data directory must see
// them again.
func TestOfflineFallbackEndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	brokenDialer := func(ctx context.Context) (*gorm.DB, error) {
		return nil, errors.New("connection refused")
	}

	local, err := store.NewLocalStore(dataDir)
	require.NoError(t, err)
	facade := store.NewFacade(brokenDialer, local)
	require.NoError(t, facade.Initialize(context.Background()))
	require.Equal(t, store.ModeOffline, facade.Mode())

	router := newRouter(t, facade)

	w := doJSON(t, router, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mode":"offline","offline":true}`, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/parts", map[string]any{
		"name": "BU808 transistor", "type": "transistor", "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var saved model.SparePart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))

	// Simulated restart: a fresh facade over the same directory with the
	// database still down.
	local2, err := store.NewLocalStore(dataDir)
	require.NoError(t, err)
	facade2 := store.NewFacade(brokenDialer, local2)
	require.NoError(t, facade2.Initialize(context.Background()))
	require.Equal(t, store.ModeOffline, facade2.Mode())

	router2 := newRouter(t, facade2)
	w = doJSON(t, router2, http.MethodGet, "/api/parts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var parts []model.SparePart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parts))
	require.Len(t, parts, 1)
	assert.Equal(t, saved.ID, parts[0].ID)
	assert.Equal(t, "BU808 transistor", parts[0].Name)
	assert.Equal(t, 3, parts[0].Quantity)
}

// TestRepairLifecycleOnline walks a device through intake, repair and issue
// over the HTTP surface with a reachable database.
func TestRepairLifecycleOnline(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "workshop.db")
	dialer := func(ctx context.Context) (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&model.Device{}, &model.SparePart{}); err != nil {
			return nil, err
		}
		return db, nil
	}

	local, err := store.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	facade := store.NewFacade(dialer, local)
	require.NoError(t, facade.Initialize(context.Background()))
	require.Equal(t, store.ModeOnline, facade.Mode())

	router := newRouter(t, facade)

	// Intake.
	w := doJSON(t, router, http.MethodPost, "/api/devices", map[string]any{
		"clientName":       "Petrov",
		"deviceModel":      "Microwave M20",
		"issueDescription": "Sparks inside",
		"urgency":          "critical",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var device model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &device))
	require.NotEmpty(t, device.ID)
	assert.Equal(t, model.StatusReceived, device.Status)
	received := device.DateReceived

	// Walk the repair forward.
	for _, status := range []model.DeviceStatus{
		model.StatusInProgress, model.StatusReady, model.StatusIssued,
	} {
		w = doJSON(t, router, http.MethodPut, "/api/devices/"+device.ID, map[string]any{
			"clientName":       "Petrov",
			"deviceModel":      "Microwave M20",
			"issueDescription": "Sparks inside",
			"urgency":          "critical",
			"status":           string(status),
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &device))
		assert.Equal(t, status, device.Status)
		assert.True(t, device.DateReceived.Equal(received), "intake date must survive updates")
	}

	// Paperwork for the finished repair.
	w = doJSON(t, router, http.MethodGet, "/api/devices/"+device.ID+"/documents/act", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	// Issued devices leave the board.
	w = doJSON(t, router, http.MethodDelete, "/api/devices/"+device.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/devices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
