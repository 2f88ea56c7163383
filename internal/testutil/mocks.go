package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/email"
)

// MockGateway is a mock implementation of payment.Gateway
type MockGateway struct {
	mu         sync.Mutex
	Requests   []payment.CheckoutRequest
	CreateErr  error
	Event      *payment.WebhookEvent
	ParseErr   error
	nextNumber int
}

// NewMockGateway creates a gateway that hands out numbered sessions
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.Requests = append(m.Requests, req)
	m.nextNumber++
	id := fmt.Sprintf("cs_test_%d", m.nextNumber)
	return &payment.CheckoutSession{
		ID:  id,
		URL: "https://checkout.stripe.com/c/pay/" + id,
	}, nil
}

func (m *MockGateway) ParseWebhook(payload []byte, signature string) (*payment.WebhookEvent, error) {
	if m.ParseErr != nil {
		return nil, m.ParseErr
	}
	return m.Event, nil
}

// LastRequest returns the most recent checkout request
func (m *MockGateway) LastRequest() (payment.CheckoutRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return payment.CheckoutRequest{}, false
	}
	return m.Requests[len(m.Requests)-1], true
}

// MockMailer records sent messages
type MockMailer struct {
	mu       sync.Mutex
	Messages []email.Message
	Err      error
}

func (m *MockMailer) Send(ctx context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msg)
	return nil
}

// Sent returns a copy of the recorded messages
func (m *MockMailer) Sent() []email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.Message(nil), m.Messages...)
}

// StoredObject is an object written to MockStore
type StoredObject struct {
	ContentType string
	Body        []byte
}

// MockStore is an in-memory storage.Store
type MockStore struct {
	mu      sync.Mutex
	Objects map[string]StoredObject
	Err     error
}

// NewMockStore creates an empty store
func NewMockStore() *MockStore {
	return &MockStore{Objects: make(map[string]StoredObject)}
}

func (m *MockStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = StoredObject{ContentType: contentType, Body: data}
	return "https://cdn.example.com/" + key, nil
}
