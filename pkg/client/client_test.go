package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL})
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

func TestLoginStoresToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			var body LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Email != "ana@example.com" {
				t.Errorf("login email = %q", body.Email)
			}
			writeData(w, http.StatusOK, map[string]interface{}{
				"accessToken":  "access-1",
				"refreshToken": "refresh-1",
				"user":         map[string]string{"id": "u1", "name": "Ana", "role": "PRESTADOR"},
			})
		case "/api/v1/auth/me":
			if got := r.Header.Get("Authorization"); got != "Bearer access-1" {
				t.Errorf("Authorization = %q", got)
			}
			writeData(w, http.StatusOK, map[string]string{"id": "u1", "name": "Ana", "role": "PRESTADOR"})
		default:
			http.NotFound(w, r)
		}
	})

	resp, err := c.Login(context.Background(), "ana@example.com", "segredo123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.RefreshToken != "refresh-1" || c.GetToken() != "access-1" {
		t.Errorf("Login() = %+v token %q", resp, c.GetToken())
	}

	me, err := c.GetCurrentUser(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentUser() error = %v", err)
	}
	if me.Role != "PRESTADOR" {
		t.Errorf("role = %q", me.Role)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"CONFLICT","message":"Email already registered"},"requestId":"req-9"}`))
	})

	_, err := c.Register(context.Background(), RegisterRequest{Email: "x@example.com", Password: "segredo123", Name: "X", Role: "PRESTADOR"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Register() error = %v, want *APIError", err)
	}
	if !apiErr.IsConflict() || apiErr.Code != "CONFLICT" || apiErr.Message != "Email already registered" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if apiErr.RequestID != "req-9" {
		t.Errorf("RequestID = %q, want req-9", apiErr.RequestID)
	}
}

func TestPlainTextErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.Plans().List(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("List() error = %v, want *APIError", err)
	}
	if !apiErr.IsServerError() || apiErr.Message != "upstream down" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestVagasListQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/api/v1/vagas" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if q.Get("page") != "2" || q.Get("state") != "SP" || q.Get("q") != "pedreiro" || q.Has("city") {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		writeData(w, http.StatusOK, map[string]interface{}{
			"data":        []map[string]interface{}{{"id": "v1", "title": "Pedreiro", "boosted": true}},
			"page":        2,
			"page_size":   20,
			"total_items": 21,
			"total_pages": 2,
		})
	})

	page, err := c.Vagas().List(context.Background(), &VagaListOptions{
		ListOptions: ListOptions{Page: 2},
		State:       "SP",
		Query:       "pedreiro",
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.TotalItems != 21 || len(page.Data) != 1 || page.Data[0].Title != "Pedreiro" {
		t.Errorf("List() = %+v", page)
	}
}

func TestCheckoutJobBoost(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/vagas/paid" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body JobBoostRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.VagaID != "v1" || body.DurationDays != 15 {
			t.Errorf("body = %+v", body)
		}
		writeData(w, http.StatusOK, map[string]string{"checkoutUrl": "https://checkout.stripe.com/c/pay/cs_1"})
	})

	resp, err := c.Checkout().JobBoost(context.Background(), JobBoostRequest{VagaID: "v1", DurationDays: 15})
	if err != nil {
		t.Fatalf("JobBoost() error = %v", err)
	}
	if resp.CheckoutURL == "" {
		t.Error("empty checkout url")
	}
}
