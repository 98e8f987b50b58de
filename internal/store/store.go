package store

import (
	"context"
	"errors"

	"repair-workshop-backend/internal/model"
)

// Mode is the sticky choice of backing store made once per session.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// ErrNotInitialized is returned when a collection operation is issued before
// Initialize has selected a backing store.
var ErrNotInitialized = errors.New("store: facade is not initialized")

// Store is the uniform read/write contract over one backing store. Save is
// an upsert by id: the record is created if its id is unseen, otherwise the
// whole record is replaced. Delete of an absent id is a no-op.
type Store interface {
	ListDevices(ctx context.Context) ([]model.Device, error)
	SaveDevice(ctx context.Context, d model.Device) (model.Device, error)
	DeleteDevice(ctx context.Context, id string) error

	ListParts(ctx context.Context) ([]model.SparePart, error)
	SavePart(ctx context.Context, p model.SparePart) (model.SparePart, error)
	DeletePart(ctx context.Context, id string) error
}
