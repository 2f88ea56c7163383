package payment

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/trampo-app/trampo/internal/domain/ad"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/domain/vaga"
)

func TestMetadataRoundTrip(t *testing.T) {
	purchases := []Purchase{
		HighlightPurchase{UserID: "u1", PlanID: "p1", PlanCode: plan.CodeOuro},
		AdPurchase{UserID: "u1", PlanID: "p1", PlanCode: plan.CodePrata, Title: "Pintura", Content: "Pinto sua casa", Target: ad.TargetWorkers, ImageURL: "https://cdn/x.png"},
		JobBoostPurchase{UserID: "u1", VagaID: "v1", DurationDays: 45},
	}
	for _, p := range purchases {
		t.Run(string(p.Type()), func(t *testing.T) {
			got, err := ParseMetadata(p.Metadata())
			if err != nil {
				t.Fatalf("ParseMetadata() error = %v", err)
			}
			if got != p {
				t.Errorf("got %+v, want %+v", got, p)
			}
		})
	}
}

func TestParseMetadataInvalid(t *testing.T) {
	tests := []struct {
		name string
		md   map[string]string
	}{
		{"empty", map[string]string{}},
		{"missing user", map[string]string{KeyPurchaseType: "highlight", KeyPlanCode: "OURO"}},
		{"unknown type", map[string]string{KeyPurchaseType: "coupon", KeyUserID: "u1"}},
		{"highlight without plan", map[string]string{KeyPurchaseType: "highlight", KeyUserID: "u1"}},
		{"bad plan code", map[string]string{KeyPurchaseType: "highlight", KeyUserID: "u1", KeyPlanCode: "DIAMANTE"}},
		{"ad without title", map[string]string{KeyPurchaseType: "ad", KeyUserID: "u1", KeyPlanCode: "OURO", KeyAdContent: "x", KeyAdTarget: "ALL"}},
		{"ad bad target", map[string]string{KeyPurchaseType: "ad", KeyUserID: "u1", KeyPlanCode: "OURO", KeyAdTitle: "t", KeyAdContent: "x", KeyAdTarget: "ALIENS"}},
		{"boost without vaga", map[string]string{KeyPurchaseType: "jobHighlight", KeyUserID: "u1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMetadata(tt.md)
			if !errors.Is(err, ErrInvalidMetadata) {
				t.Errorf("expected ErrInvalidMetadata, got %v", err)
			}
		})
	}
}

func TestParseMetadataBoostDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", vaga.DefaultBoostDays},
		{"abc", vaga.DefaultBoostDays},
		{"-3", 1},
		{"400", 400},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p, err := ParseMetadata(map[string]string{
				KeyPurchaseType: "jobHighlight", KeyUserID: "u1", KeyVagaID: "v1", KeyDurationDays: tt.raw,
			})
			if err != nil {
				t.Fatalf("ParseMetadata() error = %v", err)
			}
			if got := p.(JobBoostPurchase).DurationDays; got != tt.want {
				t.Errorf("DurationDays = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMetadataValuesCapped(t *testing.T) {
	long := strings.Repeat("ção", 300)
	md := AdPurchase{UserID: "u1", PlanCode: plan.CodeOuro, Title: "t", Content: long, Target: ad.TargetAll}.Metadata()

	got := md[KeyAdContent]
	if n := utf8.RuneCountInString(got); n != MaxMetadataValueLen {
		t.Errorf("content has %d characters, want %d", n, MaxMetadataValueLen)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a multi-byte character")
	}
}
