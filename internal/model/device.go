package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid marks a record that failed boundary validation. Callers can
// test for it with errors.Is.
var ErrInvalid = errors.New("invalid record")

// DeviceStatus is the repair state of a device. Transitions are driven only
// by explicit user actions; the backend never advances a status on its own.
type DeviceStatus string

const (
	StatusReceived     DeviceStatus = "received"
	StatusInProgress   DeviceStatus = "in_progress"
	StatusWaitingParts DeviceStatus = "waiting_parts"
	StatusReady        DeviceStatus = "ready"
	StatusIssued       DeviceStatus = "issued"
)

// Valid reports whether s is one of the recognized statuses.
func (s DeviceStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusInProgress, StatusWaitingParts, StatusReady, StatusIssued:
		return true
	}
	return false
}

// Label returns the human-readable form used on printed documents.
func (s DeviceStatus) Label() string {
	switch s {
	case StatusReceived:
		return "Received"
	case StatusInProgress:
		return "In progress"
	case StatusWaitingParts:
		return "Waiting for parts"
	case StatusReady:
		return "Ready"
	case StatusIssued:
		return "Issued"
	}
	return string(s)
}

// Urgency is the repair priority set at intake and editable afterwards.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Valid reports whether u is one of the recognized urgencies.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyNormal, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// Device represents one customer's item currently or previously in the shop.
// ID is assigned once at creation and is the sole upsert/delete key.
type Device struct {
	ID               string       `gorm:"primaryKey;size:36" json:"id"`
	ClientName       string       `gorm:"size:256;not null" json:"clientName"`
	DeviceModel      string       `gorm:"size:256;not null" json:"deviceModel"`
	IssueDescription string       `gorm:"type:text" json:"issueDescription"`
	DateReceived     time.Time    `gorm:"not null" json:"dateReceived"`
	Status           DeviceStatus `gorm:"size:32;not null" json:"status"`
	StatusChangedAt  time.Time    `gorm:"not null" json:"statusChangedAt"`
	Urgency          Urgency      `gorm:"size:16;not null" json:"urgency"`
	IsPlanned        bool         `json:"isPlanned"`
	Notes            string       `gorm:"type:text" json:"notes"`
}

// Validate checks the fields a device must carry before it may be persisted.
func (d *Device) Validate() error {
	if d.ClientName == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalid)
	}
	if d.DeviceModel == "" {
		return fmt.Errorf("%w: device model is required", ErrInvalid)
	}
	if d.Status != "" && !d.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, d.Status)
	}
	if d.Urgency != "" && !d.Urgency.Valid() {
		return fmt.Errorf("%w: unknown urgency %q", ErrInvalid, d.Urgency)
	}
	return nil
}
