package request_models

type CreateContributionRequest struct {
	Kind       string `json:"kind" binding:"required,oneof=memory condolence donation"`
	AuthorName string `json:"author_name" binding:"required"`

	AssetPath       string `json:"asset_path"`
	AssetDecoration string `json:"asset_decoration"`
	Decoration      string `json:"decoration"`

	Content string `json:"content"`

	WreathTier string `json:"wreath_tier"`

	DonationCount int `json:"donation_count" binding:"gte=0"`
}

type UpdateContributionRequest struct {
	AssetPath       *string `json:"asset_path"`
	AssetDecoration *string `json:"asset_decoration"`
	Decoration      *string `json:"decoration"`
	Content         *string `json:"content"`
	WreathTier      *string `json:"wreath_tier"`
	DonationCount   *int    `json:"donation_count"`
}
