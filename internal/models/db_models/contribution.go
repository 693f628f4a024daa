package db_models

import (
	"github.com/google/uuid"
)

type ContributionKind string

const (
	KindMemory     ContributionKind = "memory"
	KindCondolence ContributionKind = "condolence"
	KindDonation   ContributionKind = "donation"
)

type ContributionStatus string

const (
	StatusDraft     ContributionStatus = "draft"
	StatusInReview  ContributionStatus = "in_review"
	StatusPublished ContributionStatus = "published"
	StatusRejected  ContributionStatus = "rejected"
	StatusRemoved   ContributionStatus = "removed"
)

// Contribution is a closed set of variants (memory, condolence, donation)
// sharing one table. Every site that prices or moderates a contribution
// switches over Kind exhaustively and errors on anything else.
type Contribution struct {
	BaseModel
	MemorialSlug string           `gorm:"size:128;index"`
	Kind         ContributionKind `gorm:"size:16;index"`
	Status       ContributionStatus `gorm:"size:16;index"`

	// Author snapshot, immutable after creation.
	AuthorID       uuid.UUID `gorm:"index"`
	AuthorName     string    `gorm:"size:128"`
	AuthorVerified bool

	// Memory: an optional uploaded asset with its own decoration,
	// or a plain decoration when no asset was attached.
	AssetPath       string `gorm:"size:512"`
	AssetDecoration string `gorm:"size:64"`
	Decoration      string `gorm:"size:64"`

	// Condolence
	Content string `gorm:"type:text"`

	// Donation
	WreathTier string `gorm:"size:64"`

	// Paid add-on independent of the variant's own decoration.
	DonationCount int `gorm:"default:0"`

	TotalLikes int `gorm:"default:0"`
}

func (c *Contribution) IsDraft() bool {
	return c.Status == StatusDraft
}
