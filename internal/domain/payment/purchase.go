package payment

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/trampo-app/trampo/internal/domain/ad"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/domain/vaga"
)

// PurchaseType is the closed set of things a checkout can buy
type PurchaseType string

const (
	TypeHighlight PurchaseType = "highlight"
	TypeAd        PurchaseType = "ad"
	TypeJobBoost  PurchaseType = "jobHighlight"
)

// Valid reports whether t is a known purchase type
func (t PurchaseType) Valid() bool {
	switch t {
	case TypeHighlight, TypeAd, TypeJobBoost:
		return true
	}
	return false
}

// Checkout metadata keys
const (
	KeyUserID       = "userId"
	KeyPlanID       = "planId"
	KeyPlanCode     = "planCode"
	KeyPurchaseType = "purchaseType"
	KeyAdTitle      = "adTitle"
	KeyAdContent    = "adContent"
	KeyAdTarget     = "adTarget"
	KeyAdImageURL   = "adImageUrl"
	KeyVagaID       = "vagaId"
	KeyDurationDays = "durationDays"
)

// MaxMetadataValueLen is Stripe's limit on a metadata value, in characters
const MaxMetadataValueLen = 500

// ErrInvalidMetadata is returned when a metadata bag does not describe a
// well-formed purchase
var ErrInvalidMetadata = errors.New("invalid purchase metadata")

// Purchase is the decoded intent carried through checkout metadata.
// Implementations are HighlightPurchase, AdPurchase and JobBoostPurchase.
type Purchase interface {
	Type() PurchaseType
	// Buyer returns the id of the paying user
	Buyer() string
	// Metadata encodes the purchase for the checkout session
	Metadata() map[string]string
	purchase()
}

// HighlightPurchase buys a ranking boost
type HighlightPurchase struct {
	UserID   string
	PlanID   string
	PlanCode plan.Code
}

func (HighlightPurchase) Type() PurchaseType { return TypeHighlight }
func (p HighlightPurchase) Buyer() string    { return p.UserID }
func (HighlightPurchase) purchase()          {}

func (p HighlightPurchase) Metadata() map[string]string {
	return capValues(map[string]string{
		KeyPurchaseType: string(TypeHighlight),
		KeyUserID:       p.UserID,
		KeyPlanID:       p.PlanID,
		KeyPlanCode:     string(p.PlanCode),
	})
}

// AdPurchase buys a sponsored placement
type AdPurchase struct {
	UserID   string
	PlanID   string
	PlanCode plan.Code
	Title    string
	Content  string
	ImageURL string
	Target   ad.Target
}

func (AdPurchase) Type() PurchaseType { return TypeAd }
func (p AdPurchase) Buyer() string    { return p.UserID }
func (AdPurchase) purchase()          {}

func (p AdPurchase) Metadata() map[string]string {
	md := map[string]string{
		KeyPurchaseType: string(TypeAd),
		KeyUserID:       p.UserID,
		KeyPlanID:       p.PlanID,
		KeyPlanCode:     string(p.PlanCode),
		KeyAdTitle:      p.Title,
		KeyAdContent:    p.Content,
		KeyAdTarget:     string(p.Target),
	}
	if p.ImageURL != "" {
		md[KeyAdImageURL] = p.ImageURL
	}
	return capValues(md)
}

// JobBoostPurchase promotes a vaga in the public listing
type JobBoostPurchase struct {
	UserID       string
	VagaID       string
	DurationDays int
}

func (JobBoostPurchase) Type() PurchaseType { return TypeJobBoost }
func (p JobBoostPurchase) Buyer() string    { return p.UserID }
func (JobBoostPurchase) purchase()          {}

func (p JobBoostPurchase) Metadata() map[string]string {
	return capValues(map[string]string{
		KeyPurchaseType: string(TypeJobBoost),
		KeyUserID:       p.UserID,
		KeyVagaID:       p.VagaID,
		KeyDurationDays: strconv.Itoa(p.DurationDays),
	})
}

// ParseMetadata decodes a checkout metadata bag into a Purchase. It fails
// with ErrInvalidMetadata when required fields are missing or malformed.
func ParseMetadata(md map[string]string) (Purchase, error) {
	userID := md[KeyUserID]
	if userID == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidMetadata, KeyUserID)
	}

	switch t := PurchaseType(md[KeyPurchaseType]); t {
	case TypeHighlight:
		planID, code, err := parsePlan(md)
		if err != nil {
			return nil, err
		}
		return HighlightPurchase{UserID: userID, PlanID: planID, PlanCode: code}, nil

	case TypeAd:
		planID, code, err := parsePlan(md)
		if err != nil {
			return nil, err
		}
		p := AdPurchase{
			UserID:   userID,
			PlanID:   planID,
			PlanCode: code,
			Title:    md[KeyAdTitle],
			Content:  md[KeyAdContent],
			ImageURL: md[KeyAdImageURL],
			Target:   ad.Target(md[KeyAdTarget]),
		}
		if p.Title == "" || p.Content == "" {
			return nil, fmt.Errorf("%w: ad title and content are required", ErrInvalidMetadata)
		}
		if !p.Target.Valid() {
			return nil, fmt.Errorf("%w: unknown ad target %q", ErrInvalidMetadata, p.Target)
		}
		return p, nil

	case TypeJobBoost:
		vagaID := md[KeyVagaID]
		if vagaID == "" {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidMetadata, KeyVagaID)
		}
		// Unparseable durations fall back to the default
		days, _ := strconv.Atoi(md[KeyDurationDays])
		return JobBoostPurchase{UserID: userID, VagaID: vagaID, DurationDays: vaga.BoostDays(days)}, nil

	default:
		return nil, fmt.Errorf("%w: unknown purchase type %q", ErrInvalidMetadata, t)
	}
}

func parsePlan(md map[string]string) (string, plan.Code, error) {
	planID := md[KeyPlanID]
	code := plan.Code(md[KeyPlanCode])
	if planID == "" && code == "" {
		return "", "", fmt.Errorf("%w: missing plan", ErrInvalidMetadata)
	}
	if code != "" && !code.Valid() {
		return "", "", fmt.Errorf("%w: unknown plan code %q", ErrInvalidMetadata, code)
	}
	return planID, code, nil
}

func capValues(md map[string]string) map[string]string {
	for k, v := range md {
		md[k] = truncate(v, MaxMetadataValueLen)
	}
	return md
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
