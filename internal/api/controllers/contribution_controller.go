package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"memoria/internal/models/request_models"
	"memoria/internal/services"
	"memoria/pkg/utils"
)

type ContributionController struct {
	contributionService services.ContributionServiceInterface
	publishService      services.PublishServiceInterface
}

func NewContributionController(
	contributionService services.ContributionServiceInterface,
	publishService services.PublishServiceInterface,
) *ContributionController {
	return &ContributionController{
		contributionService: contributionService,
		publishService:      publishService,
	}
}

// CreateDraft godoc
// @Summary Create a draft contribution on a memorial page
// @Tags Contributions
// @Accept json
// @Produce json
// @Param memorialId path string true "Memorial slug"
// @Param request body request_models.CreateContributionRequest true "Create Contribution Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /memorials/{memorialId}/contributions [post]
func (cc *ContributionController) CreateDraft(c *gin.Context) {

	var request request_models.CreateContributionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	author, ok := callerAuthor(c)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}
	author.Name = request.AuthorName

	contribution, err := cc.contributionService.CreateDraft(c.Request.Context(), c.Param("memorialId"), author, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, contribution, "Draft created successfully")
}

// UpdateDraft godoc
// @Summary Edit a draft contribution
// @Tags Contributions
// @Accept json
// @Produce json
// @Param id path string true "Contribution ID"
// @Param request body request_models.UpdateContributionRequest true "Update Contribution Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /contributions/{id} [put]
func (cc *ContributionController) UpdateDraft(c *gin.Context) {

	contributionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid contribution id")
		return
	}

	var request request_models.UpdateContributionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	author, ok := callerAuthor(c)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	contribution, err := cc.contributionService.UpdateDraft(c.Request.Context(), contributionID, author.ID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, contribution, "Draft updated successfully")
}

// ListByMemorial godoc
// @Summary List contributions on a memorial page
// @Tags Contributions
// @Produce json
// @Param memorialId path string true "Memorial slug"
// @Success 200 {object} utils.APIResponse
// @Router /memorials/{memorialId}/contributions [get]
func (cc *ContributionController) ListByMemorial(c *gin.Context) {

	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	// Anonymous callers see published contributions only.
	callerID := uuid.Nil
	if author, ok := callerAuthor(c); ok {
		callerID = author.ID
	}

	contributions, err := cc.contributionService.ListByMemorial(c.Request.Context(), c.Param("memorialId"), callerID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, contributions, "Fetched contributions successfully")
}

// Publish godoc
// @Summary Publish a draft contribution, or get a checkout redirect if it costs money
// @Tags Contributions
// @Produce json
// @Param id path string true "Contribution ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /contributions/{id}/publish [post]
func (cc *ContributionController) Publish(c *gin.Context) {

	contributionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid contribution id")
		return
	}

	result, err := cc.publishService.Publish(c.Request.Context(), contributionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Publish processed")
}

// PurchaseReturn godoc
// @Summary Validate a checkout session on return from the payment provider
// @Tags Contributions
// @Produce json
// @Param contribution_id query string true "Contribution ID"
// @Param session_id query string true "Checkout session ID"
// @Success 200 {object} utils.APIResponse
// @Router /contributions/purchase-return [get]
func (cc *ContributionController) PurchaseReturn(c *gin.Context) {

	contributionID, err := uuid.Parse(c.Query("contribution_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "contribution_id is required")
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	result, err := cc.publishService.ValidatePurchase(c.Request.Context(), contributionID, sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Purchase validation processed")
}

func callerAuthor(c *gin.Context) (services.Author, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		return services.Author{}, false
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return services.Author{}, false
	}
	return services.Author{
		ID:       id,
		Verified: c.GetBool("verified"),
	}, true
}
