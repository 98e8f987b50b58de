package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Subscriptions belong to the shop machine's own browser, so they live in
// the local store regardless of which collection store is active.
type PushSubscription struct {
	Endpoint  string    `json:"endpoint"`
	P256DH    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"createdAt"`
}
