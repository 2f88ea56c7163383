package plan

import "testing"

func TestCatalog(t *testing.T) {
	plans, err := Catalog()
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if len(plans) != 4 {
		t.Fatalf("expected 4 plans, got %d", len(plans))
	}
	for i := 1; i < len(plans); i++ {
		if plans[i].Priority <= plans[i-1].Priority {
			t.Errorf("plans must be listed by increasing priority: %s after %s", plans[i].Code, plans[i-1].Code)
		}
	}
}

func TestParseCatalogRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown code", "plans:\n  - {id: a, code: DIAMANTE, price_cents: 1, duration_days: 1, priority: 1}\n"},
		{"duplicate", "plans:\n  - {id: a, code: OURO, price_cents: 1, duration_days: 1, priority: 1}\n  - {id: b, code: OURO, price_cents: 1, duration_days: 1, priority: 2}\n"},
		{"zero price", "plans:\n  - {id: a, code: OURO, price_cents: 0, duration_days: 1, priority: 1}\n"},
		{"malformed", "plans: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDuration(t *testing.T) {
	p := Plan{DurationDays: 15}
	if got := p.Duration().Hours(); got != 360 {
		t.Errorf("Duration() = %vh, want 360h", got)
	}
}
