package response_models

// PublishStatusNeedsPayment is returned when the contribution cannot be
// finalized until the checkout at PaymentURL completes.
const PublishStatusNeedsPayment = "needs_payment"

type PublishResponse struct {
	Status     string `json:"status"`
	PaymentURL string `json:"payment_url,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
	AmountDue  int64  `json:"amount_due_in_cents,omitempty"`
}

type PurchaseResultResponse struct {
	Success     bool   `json:"success"`
	Status      string `json:"status,omitempty"`
	RedirectURL string `json:"redirect_url"`
}

type ContributionResponse struct {
	ID           string `json:"id"`
	MemorialSlug string `json:"memorial_slug"`
	Kind         string `json:"kind"`
	Status       string `json:"status"`

	AuthorID       string `json:"author_id"`
	AuthorName     string `json:"author_name"`
	AuthorVerified bool   `json:"author_verified"`

	AssetPath       string `json:"asset_path,omitempty"`
	AssetDecoration string `json:"asset_decoration,omitempty"`
	Decoration      string `json:"decoration,omitempty"`
	Content         string `json:"content,omitempty"`
	WreathTier      string `json:"wreath_tier,omitempty"`

	DonationCount int   `json:"donation_count"`
	TotalLikes    int   `json:"total_likes"`
	CreatedAt     int64 `json:"created_at"`
}
