package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"repair-workshop-backend/internal/model"
)

// remoteStore implements Store against the networked relational database,
// one table per entity kind, keyed by id. On conflict the entire record is
// replaced, matching the local store's snapshot semantics.
type remoteStore struct {
	db *gorm.DB
}

// NewRemoteStore creates a Store backed by the given database handle.
func NewRemoteStore(db *gorm.DB) Store {
	return &remoteStore{db: db}
}

func (s *remoteStore) ListDevices(ctx context.Context) ([]model.Device, error) {
	devices := []model.Device{}
	if err := s.db.WithContext(ctx).Order("date_received, id").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

func (s *remoteStore) SaveDevice(ctx context.Context, d model.Device) (model.Device, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&d).Error
	if err != nil {
		return model.Device{}, fmt.Errorf("failed to upsert device %s: %w", d.ID, err)
	}
	return d, nil
}

func (s *remoteStore) DeleteDevice(ctx context.Context, id string) error {
	// Zero rows affected is fine: deleting an absent id is a no-op.
	if err := s.db.WithContext(ctx).Delete(&model.Device{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete device %s: %w", id, err)
	}
	return nil
}

func (s *remoteStore) ListParts(ctx context.Context) ([]model.SparePart, error) {
	parts := []model.SparePart{}
	if err := s.db.WithContext(ctx).Order("id").Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	return parts, nil
}

func (s *remoteStore) SavePart(ctx context.Context, p model.SparePart) (model.SparePart, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&p).Error
	if err != nil {
		return model.SparePart{}, fmt.Errorf("failed to upsert part %s: %w", p.ID, err)
	}
	return p, nil
}

func (s *remoteStore) DeletePart(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.SparePart{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete part %s: %w", id, err)
	}
	return nil
}
