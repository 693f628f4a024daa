package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CheckoutSession links one external payment-provider session to exactly one
// contribution. Immutable after creation except for the consumed flag, which
// flips once when purchase validation finalizes the contribution.
type CheckoutSession struct {
	BaseModel
	// The partial unique index is what makes concurrent publishes safe: at
	// most one unconsumed session row can exist per contribution, so a racing
	// insert fails and falls back to the winner's session.
	ContributionID uuid.UUID `gorm:"index;uniqueIndex:uniq_checkout_sessions_open,where:consumed = false"`
	SessionID      string    `gorm:"size:128;uniqueIndex"`
	OrderCode      int64     `gorm:"index"` // provider-side order correlation
	// OrderRef is the provider-qualified order code ("payos:123456789"),
	// the form support staff paste into provider dashboards.
	OrderRef      string `gorm:"size:64;index"`
	AmountInCents int64
	PaymentURL    string `gorm:"size:1024"`

	Consumed bool `gorm:"default:false;index"`
	// Status the contribution ended up in when this session was consumed,
	// replayed verbatim on repeat validation calls. Empty on a session that
	// was closed out by expiry rather than by a validated purchase.
	ConsumedOutcome ContributionStatus `gorm:"size:16"`

	ExpiresAt int64 `gorm:"index"`

	// Raw provider payload snapshot for traceability.
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

func (s *CheckoutSession) ActiveAt(unix int64) bool {
	return !s.Consumed && s.ExpiresAt > unix
}

// ExpiredCloseout reports whether this session was consumed by expiry
// housekeeping without ever finalizing its contribution.
func (s *CheckoutSession) ExpiredCloseout() bool {
	return s.Consumed && s.ConsumedOutcome == ""
}
