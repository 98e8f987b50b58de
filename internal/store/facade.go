package store

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"repair-workshop-backend/internal/model"
)

// RemoteDialer opens a connection to the remote database and ensures its
// schema exists. It is called exactly once, during Initialize.
type RemoteDialer func(ctx context.Context) (*gorm.DB, error)

// Facade is the single component the rest of the application talks to. It
// decides once, at Initialize, whether to route every operation to the
// remote store or to the local fallback, and it owns the invariants shared
// by both stores: id assignment, boundary validation, DateReceived
// immutability and the StatusChangedAt bump on status transitions.
type Facade struct {
	dial   RemoteDialer
	local  *LocalStore
	mode   Mode
	active Store
}

// NewFacade creates an uninitialized facade. Initialize must be called
// before any collection operation.
func NewFacade(dial RemoteDialer, local *LocalStore) *Facade {
	return &Facade{dial: dial, local: local}
}

// Initialize probes the remote store and fixes the session mode. A dial
// failure is not an error: it selects offline mode for the rest of the
// session, seeding empty local collections when none exist. The decision
// is never re-evaluated, even if the remote becomes reachable later.
func (f *Facade) Initialize(ctx context.Context) error {
	db, err := f.dial(ctx)
	if err != nil {
		log.Printf("remote store unavailable, falling back to local store: %v", err)
		f.mode = ModeOffline
		f.active = f.local
		return f.local.Seed()
	}

	f.mode = ModeOnline
	f.active = NewRemoteStore(db)
	return nil
}

// Mode reports the backing store selected at Initialize.
func (f *Facade) Mode() Mode {
	return f.mode
}

// Local exposes the local store, which holds session-local state (push
// subscriptions) regardless of the active collection store.
func (f *Facade) Local() *LocalStore {
	return f.local
}

func (f *Facade) ListDevices(ctx context.Context) ([]model.Device, error) {
	if f.active == nil {
		return nil, ErrNotInitialized
	}
	return f.active.ListDevices(ctx)
}

// FindDevice looks a device up by id in the active store.
func (f *Facade) FindDevice(ctx context.Context, id string) (model.Device, bool, error) {
	devices, err := f.ListDevices(ctx)
	if err != nil {
		return model.Device{}, false, err
	}
	for _, d := range devices {
		if d.ID == id {
			return d, true, nil
		}
	}
	return model.Device{}, false, nil
}

// SaveDevice validates and upserts d. On first save the facade assigns the
// id, fixes DateReceived and fills enum defaults; on subsequent saves it
// preserves the immutable intake fields and bumps StatusChangedAt only when
// the status actually changed. Last write wins; there is no version check.
func (f *Facade) SaveDevice(ctx context.Context, d model.Device) (model.Device, error) {
	if f.active == nil {
		return model.Device{}, ErrNotInitialized
	}
	if err := d.Validate(); err != nil {
		return model.Device{}, err
	}

	now := time.Now().UTC()
	if d.Status == "" {
		d.Status = model.StatusReceived
	}
	if d.Urgency == "" {
		d.Urgency = model.UrgencyNormal
	}

	if d.ID == "" {
		d.ID = uuid.NewString()
	} else if existing, found, err := f.FindDevice(ctx, d.ID); err != nil {
		return model.Device{}, err
	} else if found {
		d.DateReceived = existing.DateReceived
		if d.Status != existing.Status {
			d.StatusChangedAt = now
		} else {
			d.StatusChangedAt = existing.StatusChangedAt
		}
		return f.active.SaveDevice(ctx, d)
	}

	if d.DateReceived.IsZero() {
		d.DateReceived = now
	}
	d.StatusChangedAt = now
	return f.active.SaveDevice(ctx, d)
}

func (f *Facade) DeleteDevice(ctx context.Context, id string) error {
	if f.active == nil {
		return ErrNotInitialized
	}
	return f.active.DeleteDevice(ctx, id)
}

func (f *Facade) ListParts(ctx context.Context) ([]model.SparePart, error) {
	if f.active == nil {
		return nil, ErrNotInitialized
	}
	return f.active.ListParts(ctx)
}

// SavePart validates and upserts p, assigning an id on first save.
func (f *Facade) SavePart(ctx context.Context, p model.SparePart) (model.SparePart, error) {
	if f.active == nil {
		return model.SparePart{}, ErrNotInitialized
	}
	if err := p.Validate(); err != nil {
		return model.SparePart{}, err
	}

	if p.Type == "" {
		p.Type = model.PartOther
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return f.active.SavePart(ctx, p)
}

func (f *Facade) DeletePart(ctx context.Context, id string) error {
	if f.active == nil {
		return ErrNotInitialized
	}
	return f.active.DeletePart(ctx, id)
}
