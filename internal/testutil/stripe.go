package testutil

import (
	"encoding/json"
	"time"

	"github.com/stripe/stripe-go/v76/webhook"
)

// SignStripePayload builds a Stripe-Signature header for payload
func SignStripePayload(secret string, payload []byte) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	})
	return signed.Header
}

// CheckoutCompletedPayload builds a checkout.session.completed event body
func CheckoutCompletedPayload(eventID, sessionID, paymentStatus string, metadata map[string]string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"id":          eventID,
		"object":      "event",
		"type":        "checkout.session.completed",
		"api_version": "2023-10-16",
		"created":     time.Now().Unix(),
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":             sessionID,
				"object":         "checkout.session",
				"payment_status": paymentStatus,
				"metadata":       metadata,
			},
		},
	})
	return body
}

// EventPayload builds an event body of an arbitrary type with an empty object
func EventPayload(eventID, eventType string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"id":          eventID,
		"object":      "event",
		"type":        eventType,
		"api_version": "2023-10-16",
		"data":        map[string]interface{}{"object": map[string]interface{}{"id": "obj_1"}},
	})
	return body
}
