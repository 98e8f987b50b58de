package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"repair-workshop-backend/internal/advice"
	"repair-workshop-backend/internal/docs"
	"repair-workshop-backend/internal/notification"
	"repair-workshop-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	facade  *store.Facade
	advice  *advice.Client
	docs    *docs.Builder
	pool    *notification.WorkerPool
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(facade *store.Facade, adviceClient *advice.Client, docBuilder *docs.Builder, pool *notification.WorkerPool, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		facade:  facade,
		advice:  adviceClient,
		docs:    docBuilder,
		pool:    pool,
		webpush: webpushOptions,
	}
}
