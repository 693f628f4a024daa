package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"memoria/internal/services"
	"memoria/pkg/utils"
)

type GreetingController struct {
	greetingService services.GreetingServiceInterface
}

func NewGreetingController(greetingService services.GreetingServiceInterface) *GreetingController {
	return &GreetingController{
		greetingService: greetingService,
	}
}

// GetGreeting godoc
// @Summary Poll the AI greeting status for a memorial
// @Tags Greetings
// @Produce json
// @Param memorialId path string true "Memorial ID"
// @Success 200 {object} utils.APIResponse
// @Router /memorials/{memorialId}/greeting [get]
func (gc *GreetingController) GetGreeting(c *gin.Context) {

	memorialID, ok := memorialIDParam(c)
	if !ok {
		return
	}

	greeting, err := gc.greetingService.Get(c.Request.Context(), memorialID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, greeting, "Fetched greeting status")
}

// SubmitAudio godoc
// @Summary Upload the greeting audio recording
// @Tags Greetings
// @Accept mpfd
// @Produce json
// @Param memorialId path string true "Memorial ID"
// @Param audio formData file true "Audio recording"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /memorials/{memorialId}/greeting/audio [post]
func (gc *GreetingController) SubmitAudio(c *gin.Context) {
	gc.submitUpload(c, "audio")
}

// SubmitImage godoc
// @Summary Upload the greeting portrait image and start generation
// @Tags Greetings
// @Accept mpfd
// @Produce json
// @Param memorialId path string true "Memorial ID"
// @Param image formData file true "Portrait image"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /memorials/{memorialId}/greeting/image [post]
func (gc *GreetingController) SubmitImage(c *gin.Context) {
	gc.submitUpload(c, "image")
}

func (gc *GreetingController) submitUpload(c *gin.Context, field string) {

	memorialID, ok := memorialIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(field)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, field+" file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	var greeting interface{}
	if field == "audio" {
		greeting, err = gc.greetingService.SubmitAudio(c.Request.Context(), memorialID, file, contentType)
	} else {
		greeting, err = gc.greetingService.SubmitImage(c.Request.Context(), memorialID, file, contentType)
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, greeting, "Upload accepted")
}

// ResetGreeting godoc
// @Summary Reset the greeting and cancel any in-flight generation
// @Tags Greetings
// @Produce json
// @Param memorialId path string true "Memorial ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /memorials/{memorialId}/greeting/reset [post]
func (gc *GreetingController) ResetGreeting(c *gin.Context) {

	memorialID, ok := memorialIDParam(c)
	if !ok {
		return
	}

	if err := gc.greetingService.Reset(c.Request.Context(), memorialID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Greeting reset")
}

// SuggestPhoto godoc
// @Summary Suggest a memorial gallery photo matching a text hint
// @Tags Greetings
// @Produce json
// @Param memorialId path string true "Memorial ID"
// @Param hint query string true "Free-text hint"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /memorials/{memorialId}/greeting/suggested-photo [get]
func (gc *GreetingController) SuggestPhoto(c *gin.Context) {

	memorialID, ok := memorialIDParam(c)
	if !ok {
		return
	}

	hint := c.Query("hint")
	if hint == "" {
		utils.RespondError(c, http.StatusBadRequest, "hint is required")
		return
	}

	photo, err := gc.greetingService.SuggestPhoto(c.Request.Context(), memorialID, hint)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, photo, "Suggested photo")
}

func memorialIDParam(c *gin.Context) (uuid.UUID, bool) {
	memorialID, err := uuid.Parse(c.Param("memorialId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid memorial id")
		return uuid.Nil, false
	}
	return memorialID, true
}
