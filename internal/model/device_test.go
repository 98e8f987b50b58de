package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceValidate(t *testing.T) {
	testCases := []struct {
		name    string
		device  Device
		wantErr bool
	}{
		{
			name:    "valid device",
			device:  Device{ClientName: "Ivanov", DeviceModel: "Vacuum X1", Status: StatusReceived, Urgency: UrgencyNormal},
			wantErr: false,
		},
		{
			name:    "missing client name",
			device:  Device{DeviceModel: "Vacuum X1"},
			wantErr: true,
		},
		{
			name:    "missing device model",
			device:  Device{ClientName: "Ivanov"},
			wantErr: true,
		},
		{
			name:    "unknown status",
			device:  Device{ClientName: "Ivanov", DeviceModel: "Vacuum X1", Status: "lost"},
			wantErr: true,
		},
		{
			name:    "unknown urgency",
			device:  Device{ClientName: "Ivanov", DeviceModel: "Vacuum X1", Urgency: "whenever"},
			wantErr: true,
		},
		{
			name:    "empty status and urgency are filled in later",
			device:  Device{ClientName: "Ivanov", DeviceModel: "Vacuum X1"},
			wantErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.device.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalid), "validation errors must wrap ErrInvalid")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSparePartValidate(t *testing.T) {
	testCases := []struct {
		name    string
		part    SparePart
		wantErr bool
	}{
		{name: "valid part", part: SparePart{Name: "10uF 25V", Type: PartCapacitor, Quantity: 5}},
		{name: "missing name", part: SparePart{Type: PartCapacitor}, wantErr: true},
		{name: "unknown type", part: SparePart{Name: "10uF", Type: "inductor"}, wantErr: true},
		{name: "negative quantity", part: SparePart{Name: "10uF", Type: PartCapacitor, Quantity: -1}, wantErr: true},
		{name: "zero quantity is allowed", part: SparePart{Name: "10uF", Type: PartCapacitor, Quantity: 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.part.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeviceStatusValid(t *testing.T) {
	for _, s := range []DeviceStatus{StatusReceived, StatusInProgress, StatusWaitingParts, StatusReady, StatusIssued} {
		assert.True(t, s.Valid(), "status %q should be valid", s)
	}
	assert.False(t, DeviceStatus("").Valid())
	assert.False(t, DeviceStatus("scrapped").Valid())
}
