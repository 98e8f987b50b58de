package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"repair-workshop-backend/internal/model"
)

// Slot file names inside the local data directory. Each slot holds the
// JSON-serialized array of one full collection.
const (
	devicesSlot       = "devices.json"
	partsSlot         = "parts.json"
	subscriptionsSlot = "subscriptions.json"
)

// LocalStore is the offline fallback: durable key-indexed persistence of
// entire collections as JSON array snapshots on the local disk. Every write
// rewrites the whole slot, which is an accepted cost for a single small
// workshop's data volumes.
type LocalStore struct {
	dir string
	mu  sync.Mutex
}

// NewLocalStore opens (creating if needed) the local data directory.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local store directory %q: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Seed writes empty collections into the device and part slots unless prior
// data already exists there.
func (s *LocalStore) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range []string{devicesSlot, partsSlot} {
		path := filepath.Join(s.dir, slot)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat slot %q: %w", slot, err)
		}
		if err := s.writeSlot(slot, []json.RawMessage{}); err != nil {
			return err
		}
	}
	return nil
}

// readSlot deserializes one slot into out. A missing slot is an empty
// collection, never an error.
func (s *LocalStore) readSlot(slot string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, slot))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read slot %q: %w", slot, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode slot %q: %w", slot, err)
	}
	return nil
}

// writeSlot serializes v and replaces the slot atomically via a temp file
// rename, so a crash mid-write never leaves a truncated snapshot behind.
func (s *LocalStore) writeSlot(slot string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode slot %q: %w", slot, err)
	}

	path := filepath.Join(s.dir, slot)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", slot, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to commit slot %q: %w", slot, err)
	}
	return nil
}

// ListDevices returns the full device collection in insertion order.
func (s *LocalStore) ListDevices(ctx context.Context) ([]model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices := []model.Device{}
	if err := s.readSlot(devicesSlot, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// SaveDevice upserts d by id: replace the matching record in place, or
// append when the id is unseen.
func (s *LocalStore) SaveDevice(ctx context.Context, d model.Device) (model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices := []model.Device{}
	if err := s.readSlot(devicesSlot, &devices); err != nil {
		return model.Device{}, err
	}

	replaced := false
	for i := range devices {
		if devices[i].ID == d.ID {
			devices[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		devices = append(devices, d)
	}

	if err := s.writeSlot(devicesSlot, devices); err != nil {
		return model.Device{}, err
	}
	return d, nil
}

// DeleteDevice removes the record with the given id; absent ids are a no-op.
func (s *LocalStore) DeleteDevice(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices := []model.Device{}
	if err := s.readSlot(devicesSlot, &devices); err != nil {
		return err
	}

	kept := devices[:0]
	for _, d := range devices {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	return s.writeSlot(devicesSlot, kept)
}

// ListParts returns the full part collection in insertion order.
func (s *LocalStore) ListParts(ctx context.Context) ([]model.SparePart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := []model.SparePart{}
	if err := s.readSlot(partsSlot, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// SavePart upserts p by id.
func (s *LocalStore) SavePart(ctx context.Context, p model.SparePart) (model.SparePart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := []model.SparePart{}
	if err := s.readSlot(partsSlot, &parts); err != nil {
		return model.SparePart{}, err
	}

	replaced := false
	for i := range parts {
		if parts[i].ID == p.ID {
			parts[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		parts = append(parts, p)
	}

	if err := s.writeSlot(partsSlot, parts); err != nil {
		return model.SparePart{}, err
	}
	return p, nil
}

// DeletePart removes the record with the given id; absent ids are a no-op.
func (s *LocalStore) DeletePart(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := []model.SparePart{}
	if err := s.readSlot(partsSlot, &parts); err != nil {
		return err
	}

	kept := parts[:0]
	for _, p := range parts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return s.writeSlot(partsSlot, kept)
}

// ListSubscriptions returns every stored push subscription.
func (s *LocalStore) ListSubscriptions(ctx context.Context) ([]model.PushSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := []model.PushSubscription{}
	if err := s.readSlot(subscriptionsSlot, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// SaveSubscription upserts a push subscription by endpoint.
func (s *LocalStore) SaveSubscription(ctx context.Context, sub model.PushSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := []model.PushSubscription{}
	if err := s.readSlot(subscriptionsSlot, &subs); err != nil {
		return err
	}

	replaced := false
	for i := range subs {
		if subs[i].Endpoint == sub.Endpoint {
			subs[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		subs = append(subs, sub)
	}
	return s.writeSlot(subscriptionsSlot, subs)
}

// DeleteSubscription removes the subscription with the given endpoint.
func (s *LocalStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := []model.PushSubscription{}
	if err := s.readSlot(subscriptionsSlot, &subs); err != nil {
		return err
	}

	kept := subs[:0]
	for _, sub := range subs {
		if sub.Endpoint != endpoint {
			kept = append(kept, sub)
		}
	}
	return s.writeSlot(subscriptionsSlot, kept)
}
