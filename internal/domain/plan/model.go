package plan

import "time"

// Code identifies one of the four highlight tiers
type Code string

// Plan tiers, cheapest first
const (
	CodeBronze  Code = "BRONZE"
	CodePrata   Code = "PRATA"
	CodeOuro    Code = "OURO"
	CodePlatina Code = "PLATINA"
)

// Valid reports whether c names a known tier
func (c Code) Valid() bool {
	switch c {
	case CodeBronze, CodePrata, CodeOuro, CodePlatina:
		return true
	}
	return false
}

// Plan is an immutable catalog row used to price highlights and ads.
// Price is in BRL cents.
type Plan struct {
	ID           string `json:"id" yaml:"id"`
	Code         Code   `json:"code" yaml:"code"`
	Name         string `json:"name" yaml:"name"`
	PriceCents   int64  `json:"price" yaml:"price_cents"`
	DurationDays int    `json:"durationDays" yaml:"duration_days"`
	Priority     int    `json:"priority" yaml:"priority"`
}

// Duration returns the validity window bought with the plan
func (p *Plan) Duration() time.Duration {
	return time.Duration(p.DurationDays) * 24 * time.Hour
}
