package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"repair-workshop-backend/internal/model"
	"repair-workshop-backend/internal/store"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool pushes "device is ready" notifications to the subscribed
// browsers whenever a repair reaches the Ready status.
type WorkerPool struct {
	size    int
	jobs    chan string
	facade  *store.Facade
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, facade *store.Facade, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		facade:  facade,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case deviceID := <-wp.jobs:
			wp.notifyDeviceReady(ctx, deviceID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a device-ready notification job.
func (wp *WorkerPool) Dispatch(deviceID string) {
	wp.jobs <- deviceID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

// notifyDeviceReady fetches the device and pushes a notification to every
// stored subscription.
func (wp *WorkerPool) notifyDeviceReady(ctx context.Context, deviceID string) {
	subscriptions, err := wp.facade.Local().ListSubscriptions(ctx)
	if err != nil {
		log.Printf("Error fetching subscriptions: %v", err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	label := deviceID
	if device, found, err := wp.facade.FindDevice(ctx, deviceID); err != nil {
		log.Printf("Error fetching device %s: %v", deviceID, err)
	} else if found {
		label = fmt.Sprintf("%s (%s)", device.DeviceModel, device.ClientName)
	}

	message := fmt.Sprintf("Repair finished: %s is ready for pickup", label)
	log.Printf("Sending %d notifications for device %s", len(subscriptions), deviceID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.facade.Local().DeleteSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
