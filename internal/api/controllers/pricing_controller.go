package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"memoria/internal/models/db_models"
	"memoria/internal/models/request_models"
	"memoria/internal/services"
	"memoria/pkg/utils"
)

type PricingController struct {
	pricingService services.PricingServiceInterface
}

func NewPricingController(pricingService services.PricingServiceInterface) *PricingController {
	return &PricingController{
		pricingService: pricingService,
	}
}

// SetPrice godoc
// @Summary Set the price of a decoration, tribute or wreath choice
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body request_models.SetPriceRequest true "Set Price Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/prices [put]
func (pc *PricingController) SetPrice(c *gin.Context) {

	var request request_models.SetPriceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := pc.pricingService.SetPriceFor(
		c.Request.Context(),
		db_models.PriceCategory(request.Category),
		request.Key,
		request.PriceInCents,
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Price updated")
}

// GetPrice godoc
// @Summary Resolve the current price for one catalog choice
// @Tags Pricing
// @Produce json
// @Param category query string true "decoration | tribute | wreath"
// @Param key query string true "Catalog key"
// @Success 200 {object} utils.APIResponse
// @Router /prices [get]
func (pc *PricingController) GetPrice(c *gin.Context) {

	category := c.Query("category")
	key := c.Query("key")
	if category == "" || key == "" {
		utils.RespondError(c, http.StatusBadRequest, "category and key are required")
		return
	}

	cents, err := pc.pricingService.PriceFor(c.Request.Context(), db_models.PriceCategory(category), key)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"price_in_cents": cents}, "Resolved price")
}
