package request_models

type SetPriceRequest struct {
	Category     string `json:"category" binding:"required,oneof=decoration tribute wreath"`
	Key          string `json:"key" binding:"required"`
	PriceInCents int64  `json:"price_in_cents" binding:"gte=0"`
}
