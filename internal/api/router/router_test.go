package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trampo-app/trampo/internal/api/handlers"
	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/payments"
	"github.com/trampo-app/trampo/internal/pkg/validator"
	"github.com/trampo-app/trampo/internal/ratelimit"
	"github.com/trampo-app/trampo/internal/repository/postgres"
	"github.com/trampo-app/trampo/internal/services"
	"github.com/trampo-app/trampo/internal/testutil"
)

const webhookSecret = "whsec_router_test"

type testServer struct {
	*httptest.Server
	gateway *testutil.MockGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, nil)
}

// newTestServerWith lets a test adjust config and router deps before the
// router is built
func newTestServerWith(t *testing.T, adjust func(cfg *config.Config, deps *Deps)) *testServer {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := testutil.NewTestLogger()
	val := validator.New()

	cfg := &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}, AppBaseURL: "https://trampo.test"},
		Auth: config.AuthConfig{
			JWTSecret:          "router-test-secret-0123456789abcdef",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
			BCryptCost:         bcrypt.MinCost,
		},
		RateLimit: config.RateLimitConfig{Requests: 1000, Window: time.Minute, AuthRequests: 100},
	}

	users := postgres.NewUserRepository(db)
	plans := postgres.NewPlanRepository(db)
	highlights := postgres.NewHighlightRepository(db)
	ads := postgres.NewAdRepository(db)
	vagas := postgres.NewVagaRepository(db)
	mailer := &testutil.MockMailer{}
	notifier := services.NewNotifier(mailer, users, cfg.Server.AppBaseURL, log)

	userService := services.NewUserService(users, notifier, cfg.Auth.BCryptCost, log)
	sessions := services.NewSessionService(userService, postgres.NewTokenRepository(db), cfg.Auth, log)
	highlightService := services.NewHighlightService(highlights)
	vagaService := services.NewVagaService(vagas, users, log)

	gateway := testutil.NewMockGateway()
	checkout := services.NewCheckoutService(gateway, plans, users, vagas, services.CheckoutConfig{
		AppBaseURL:         cfg.Server.AppBaseURL,
		JobBoostPriceCents: 2990,
	}, log)
	webhook := services.NewWebhookService(
		payments.NewStripeGateway(config.StripeConfig{WebhookSecret: webhookSecret}),
		postgres.NewPaymentEventRepository(db),
		map[payment.PurchaseType]payment.Fulfiller{
			payment.TypeHighlight: services.NewHighlightFulfiller(plans, highlights),
			payment.TypeAd:        services.NewAdFulfiller(plans, ads),
			payment.TypeJobBoost:  services.NewJobBoostFulfiller(vagas),
		},
		notifier, log,
	)

	h := &Handlers{
		Health: handlers.NewHealthHandler(log,
			handlers.ReadinessCheck{Name: "database", Required: true, Check: db.PingContext}),
		Auth:    handlers.NewAuthHandler(sessions, userService, cfg.Auth, log, val),
		Profile: handlers.NewProfileHandler(userService, highlightService, log, val),
		Catalog: handlers.NewCatalogHandler(services.NewPlanService(plans, log), highlightService,
			services.NewAdService(ads), postgres.NewCategoryRepository(db), log),
		Search: handlers.NewSearchHandler(services.NewSearchService(users, highlights, log), log),
		Vaga: handlers.NewVagaHandler(vagaService,
			services.NewFavoritaService(postgres.NewFavoritaRepository(db), vagas), log, val),
		Candidatura: handlers.NewCandidaturaHandler(services.NewCandidaturaService(
			postgres.NewCandidaturaRepository(db), vagas, users, notifier, log), log, val),
		Payment: handlers.NewPaymentHandler(checkout, webhook, log, val),
		Upload:  handlers.NewUploadHandler(services.NewUploadService(testutil.NewMockStore(), 1<<20, log), log),
	}

	deps := Deps{RateLimiter: ratelimit.NewMemoryStore()}
	if adjust != nil {
		adjust(cfg, &deps)
	}
	srv := httptest.NewServer(New(cfg, log, deps, h))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, gateway: gateway}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

// post sends a raw body with extra headers and returns the status code
func (s *testServer) post(t *testing.T, path string, body []byte, headers map[string]string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, s.URL+"/api/v1"+path, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+"/api/v1"+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode, env
}

func decode(t *testing.T, raw json.RawMessage, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}

type session struct {
	AccessToken string `json:"accessToken"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (s *testServer) register(t *testing.T, email, role string) session {
	t.Helper()
	status, env := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": "segredo123",
		"name":     "Usuária " + role,
		"role":     role,
		"city":     "Salvador",
		"state":    "BA",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s status = %d (%s)", email, status, env.Error.Code)
	}
	var sess session
	decode(t, env.Data, &sess)
	return sess
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/readyz")
	if err != nil {
		t.Fatalf("GET /readyz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/readyz status = %d", resp.StatusCode)
	}
}

func TestMarketplaceFlow(t *testing.T) {
	srv := newTestServer(t)
	employer := srv.register(t, "loja@example.com", "EMPREGADOR")
	worker := srv.register(t, "ana@example.com", "PRESTADOR")

	if status, _ := srv.do(t, http.MethodGet, "/profiles/me", "", nil); status != http.StatusUnauthorized {
		t.Errorf("anonymous /profiles/me = %d, want 401", status)
	}

	newVaga := map[string]interface{}{"title": "Atendente", "description": "Loja no centro", "state": "BA"}
	if status, _ := srv.do(t, http.MethodPost, "/vagas", worker.AccessToken, newVaga); status != http.StatusForbidden {
		t.Errorf("worker POST /vagas = %d, want 403", status)
	}
	status, env := srv.do(t, http.MethodPost, "/vagas", employer.AccessToken, newVaga)
	if status != http.StatusCreated {
		t.Fatalf("employer POST /vagas = %d (%s)", status, env.Error.Code)
	}
	var v struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, env.Data, &v)

	status, env = srv.do(t, http.MethodGet, "/vagas", "", nil)
	if status != http.StatusOK {
		t.Fatalf("GET /vagas = %d", status)
	}
	var page struct {
		Data       []json.RawMessage `json:"data"`
		TotalItems int64             `json:"total_items"`
	}
	decode(t, env.Data, &page)
	if page.TotalItems != 1 || len(page.Data) != 1 {
		t.Errorf("GET /vagas total = %d items = %d, want 1", page.TotalItems, len(page.Data))
	}

	if status, _ := srv.do(t, http.MethodGet, "/vagas/"+v.ID, "", nil); status != http.StatusOK {
		t.Errorf("GET /vagas/{id} = %d", status)
	}
	if status, _ := srv.do(t, http.MethodGet, "/vagas/mine", worker.AccessToken, nil); status != http.StatusForbidden {
		t.Errorf("worker GET /vagas/mine = %d, want 403", status)
	}

	if status, _ := srv.do(t, http.MethodPost, "/vagas/"+v.ID+"/candidaturas", worker.AccessToken, nil); status != http.StatusCreated {
		t.Fatalf("apply = %d, want 201", status)
	}
	status, env = srv.do(t, http.MethodPost, "/vagas/"+v.ID+"/candidaturas", worker.AccessToken,
		map[string]string{"message": "de novo"})
	if status != http.StatusConflict || env.Error.Code != "CONFLICT" {
		t.Errorf("second apply = %d %s, want 409", status, env.Error.Code)
	}

	status, env = srv.do(t, http.MethodGet, "/vagas/"+v.ID+"/candidaturas", employer.AccessToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list candidaturas = %d", status)
	}
	var cs []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, env.Data, &cs)
	if len(cs) != 1 {
		t.Fatalf("candidaturas = %d, want 1", len(cs))
	}

	status, _ = srv.do(t, http.MethodPatch, "/candidaturas/"+cs[0].ID+"/status", employer.AccessToken,
		map[string]string{"status": "ENTREVISTA"})
	if status != http.StatusOK {
		t.Errorf("advance candidatura = %d", status)
	}
	status, _ = srv.do(t, http.MethodPatch, "/candidaturas/"+cs[0].ID+"/status", employer.AccessToken,
		map[string]string{"status": "PENDENTE"})
	if status != http.StatusBadRequest {
		t.Errorf("move candidatura back = %d, want 400", status)
	}

	if status, _ := srv.do(t, http.MethodPost, "/vagas/"+v.ID+"/favorita", worker.AccessToken, nil); status != http.StatusNoContent {
		t.Errorf("favorita = %d, want 204", status)
	}
	status, env = srv.do(t, http.MethodGet, "/favoritas", worker.AccessToken, nil)
	var favs []json.RawMessage
	decode(t, env.Data, &favs)
	if status != http.StatusOK || len(favs) != 1 {
		t.Errorf("favoritas = %d with %d items", status, len(favs))
	}

	status, _ = srv.do(t, http.MethodPatch, "/vagas/"+v.ID+"/status", employer.AccessToken,
		map[string]string{"status": "FECHADA"})
	if status != http.StatusOK {
		t.Errorf("close vaga = %d", status)
	}
	status, env = srv.do(t, http.MethodGet, "/vagas", "", nil)
	decode(t, env.Data, &page)
	if status != http.StatusOK || page.TotalItems != 0 {
		t.Errorf("closed vaga still listed: total = %d", page.TotalItems)
	}
}

func TestCheckoutAndWebhook(t *testing.T) {
	srv := newTestServer(t)
	worker := srv.register(t, "bruno@example.com", "PRESTADOR")

	status, env := srv.do(t, http.MethodPost, "/payments/checkout", worker.AccessToken, map[string]string{
		"planCode":     "OURO",
		"purchaseType": "highlight",
	})
	if status != http.StatusOK {
		t.Fatalf("checkout = %d (%s)", status, env.Error.Code)
	}
	var co struct {
		CheckoutURL string `json:"checkoutUrl"`
	}
	decode(t, env.Data, &co)
	if co.CheckoutURL == "" {
		t.Fatal("checkout url is empty")
	}

	req, ok := srv.gateway.LastRequest()
	if !ok {
		t.Fatal("gateway was not called")
	}
	payload := testutil.CheckoutCompletedPayload("evt_router", "cs_router", "paid", req.Purchase.Metadata())

	post := func(sig string) (int, map[string]interface{}) {
		r, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/payments/webhook", bytes.NewReader(payload))
		r.Header.Set("Stripe-Signature", sig)
		resp, err := http.DefaultClient.Do(r)
		if err != nil {
			t.Fatalf("webhook: %v", err)
		}
		defer resp.Body.Close()
		var body map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return resp.StatusCode, body
	}

	if code, _ := post(testutil.SignStripePayload("whsec_wrong", payload)); code != http.StatusBadRequest {
		t.Errorf("forged webhook = %d, want 400", code)
	}
	for i := 0; i < 2; i++ {
		code, body := post(testutil.SignStripePayload(webhookSecret, payload))
		if code != http.StatusOK || body["received"] != true {
			t.Errorf("delivery %d = %d %v", i+1, code, body)
		}
	}

	status, env = srv.do(t, http.MethodGet, "/search?type=workers", "", nil)
	if status != http.StatusOK {
		t.Fatalf("search = %d", status)
	}
	var results []struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Highlighted bool `json:"highlighted"`
	}
	decode(t, env.Data, &results)
	if len(results) != 1 || results[0].User.ID != worker.User.ID || !results[0].Highlighted {
		t.Errorf("search results = %+v", results)
	}
	if results[0].User.Email != "" {
		t.Error("search must not expose email addresses")
	}

	status, env = srv.do(t, http.MethodGet, "/highlights", worker.AccessToken, nil)
	var hs []json.RawMessage
	decode(t, env.Data, &hs)
	if status != http.StatusOK || len(hs) != 1 {
		t.Errorf("highlights = %d with %d rows, want 1", status, len(hs))
	}

	if status, _ := srv.do(t, http.MethodGet, "/search?type=admins", "", nil); status != http.StatusBadRequest {
		t.Errorf("search bad type = %d, want 400", status)
	}
}

func TestWebhookAllowListIgnoresForwardedHeaders(t *testing.T) {
	stripeIP := payments.StripeWebhookIPs[0]
	payload := testutil.EventPayload("evt_allow", "payment_intent.created")
	signed := func(extra map[string]string) map[string]string {
		h := map[string]string{"Stripe-Signature": testutil.SignStripePayload(webhookSecret, payload)}
		for k, v := range extra {
			h[k] = v
		}
		return h
	}

	direct := newTestServerWith(t, func(cfg *config.Config, deps *Deps) {
		deps.WebhookIPs = payments.NewAllowList(payments.StripeWebhookIPs)
	})
	for _, hdr := range []string{"X-Real-IP", "True-Client-IP", "X-Forwarded-For"} {
		if status := direct.post(t, "/payments/webhook", payload, signed(map[string]string{hdr: stripeIP})); status != http.StatusForbidden {
			t.Errorf("%s: %s status = %d, want 403", hdr, stripeIP, status)
		}
	}

	proxied := newTestServerWith(t, func(cfg *config.Config, deps *Deps) {
		deps.WebhookIPs = payments.NewAllowList(payments.StripeWebhookIPs)
		deps.TrustedProxies = []netip.Prefix{netip.MustParsePrefix("127.0.0.0/8"), netip.MustParsePrefix("::1/128")}
	})
	if status := proxied.post(t, "/payments/webhook", payload, signed(map[string]string{"X-Forwarded-For": stripeIP})); status != http.StatusOK {
		t.Errorf("hop appended by trusted proxy: status = %d, want 200", status)
	}
	spoofed := stripeIP + ", 203.0.113.7"
	if status := proxied.post(t, "/payments/webhook", payload, signed(map[string]string{"X-Forwarded-For": spoofed})); status != http.StatusForbidden {
		t.Errorf("spoofed left-most hop: status = %d, want 403", status)
	}
}

func TestRateLimitKeysOnPeerAddress(t *testing.T) {
	srv := newTestServerWith(t, func(cfg *config.Config, deps *Deps) {
		cfg.RateLimit = config.RateLimitConfig{Requests: 2, Window: time.Hour, AuthRequests: 100}
	})

	var codes []int
	for i := 0; i < 4; i++ {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/highlight-plans", nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("X-Forwarded-For", "198.51.100."+strconv.Itoa(i+1))
		req.Header.Set("X-Real-IP", "198.51.100."+strconv.Itoa(i+1))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("GET /highlight-plans: %v", err)
		}
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	if codes[0] != http.StatusOK || codes[2] != http.StatusTooManyRequests || codes[3] != http.StatusTooManyRequests {
		t.Errorf("statuses = %v, want [200 200 429 429]", codes)
	}
}
