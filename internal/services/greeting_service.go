package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"memoria/internal/models/db_models"
	"memoria/internal/models/response_models"
	"memoria/internal/repositories"
	mem "memoria/pkg/memcache"
	"memoria/pkg/utils"
)

type GreetingStage string

const (
	StageAudio   GreetingStage = "audio"
	StageImage   GreetingStage = "image"
	StagePending GreetingStage = "pending"
	StageResult  GreetingStage = "result"
)

// StageFor derives the client-facing stage from the raw greeting record.
// Pure and total: every combination of paths and state maps to exactly one
// stage.
func StageFor(greeting *db_models.AiGreeting) GreetingStage {
	if greeting == nil {
		return StageAudio
	}
	if greeting.VideoPath != "" && greeting.State == db_models.GreetingStateCompleted {
		return StageResult
	}
	if greeting.AudioPath != "" && greeting.ImagePath == "" {
		return StageImage
	}
	if greeting.Processing() {
		return StagePending
	}
	if greeting.AudioPath != "" && greeting.ImagePath != "" {
		return StagePending
	}
	return StageAudio
}

type GreetingServiceInterface interface {
	Get(ctx context.Context, memorialID uuid.UUID) (*response_models.GreetingResponse, error)
	SubmitAudio(ctx context.Context, memorialID uuid.UUID, audio io.Reader, contentType string) (*response_models.GreetingResponse, error)
	SubmitImage(ctx context.Context, memorialID uuid.UUID, image io.Reader, contentType string) (*response_models.GreetingResponse, error)
	Reset(ctx context.Context, memorialID uuid.UUID) error
	SuggestPhoto(ctx context.Context, memorialID uuid.UUID, hint string) (*response_models.SuggestedPhotoResponse, error)
}

type GreetingService struct {
	greetingRepo repositories.GreetingRepositoryInterface
	memorialRepo repositories.MemorialRepositoryInterface
	store        ObjectStore
	transcriber  Transcriber
	scripter     ScriptGenerator
	renderer     VideoRenderer
	embedder     Embedder
	tokens       mem.JobTokenStore
}

func NewGreetingService(
	greetingRepo repositories.GreetingRepositoryInterface,
	memorialRepo repositories.MemorialRepositoryInterface,
	store ObjectStore,
	transcriber Transcriber,
	scripter ScriptGenerator,
	renderer VideoRenderer,
	embedder Embedder,
	tokens mem.JobTokenStore,
) GreetingServiceInterface {
	return &GreetingService{
		greetingRepo: greetingRepo,
		memorialRepo: memorialRepo,
		store:        store,
		transcriber:  transcriber,
		scripter:     scripter,
		renderer:     renderer,
		embedder:     embedder,
		tokens:       tokens,
	}
}

func (s *GreetingService) Get(ctx context.Context, memorialID uuid.UUID) (*response_models.GreetingResponse, error) {

	greeting, err := s.greetingRepo.GetByMemorialID(ctx, memorialID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return toGreetingResponse(memorialID, greeting), nil
}

// SubmitAudio stores the recording and creates the greeting record on first
// use. Returns immediately; nothing long-running starts here.
func (s *GreetingService) SubmitAudio(ctx context.Context, memorialID uuid.UUID, audio io.Reader, contentType string) (*response_models.GreetingResponse, error) {

	if err := s.requireMemorial(ctx, memorialID); err != nil {
		return nil, err
	}

	greeting, err := s.greetingRepo.GetByMemorialID(ctx, memorialID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if greeting != nil && greeting.Processing() {
		return nil, utils.ErrInvalidState
	}
	// A failed job is terminal until the user explicitly resets; resubmitting
	// inputs must not quietly retry generation.
	if greeting != nil && greeting.State == db_models.GreetingStateError {
		return nil, utils.ErrJobFailed
	}

	audioPath := fmt.Sprintf("greetings/%s/audio-%d", memorialID, time.Now().UnixNano())
	if err := s.store.Put(ctx, audioPath, audio, contentType); err != nil {
		log.Printf("greeting: audio upload failed for %s: %v", memorialID, err)
		return nil, utils.ErrGatewayUnavailable
	}

	updated := &db_models.AiGreeting{
		MemorialID: memorialID,
		AudioPath:  audioPath,
		State:      db_models.GreetingStateReady,
		JobToken:   s.tokens.Issue(memorialID.String()),
	}
	// Re-recording discards any previous image and video selection.
	if err := s.greetingRepo.Upsert(ctx, updated); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return toGreetingResponse(memorialID, updated), nil
}

// SubmitImage completes the inputs and kicks off generation in the
// background. The request returns as soon as the job is started; the client
// drives completion detection by polling Get.
func (s *GreetingService) SubmitImage(ctx context.Context, memorialID uuid.UUID, image io.Reader, contentType string) (*response_models.GreetingResponse, error) {

	greeting, err := s.greetingRepo.GetByMemorialID(ctx, memorialID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if greeting == nil || greeting.AudioPath == "" {
		return nil, utils.ErrInvalidState
	}
	if greeting.Processing() {
		return nil, utils.ErrInvalidState
	}
	if greeting.State == db_models.GreetingStateError {
		return nil, utils.ErrJobFailed
	}

	imagePath := fmt.Sprintf("greetings/%s/image-%d", memorialID, time.Now().UnixNano())
	if err := s.store.Put(ctx, imagePath, image, contentType); err != nil {
		log.Printf("greeting: image upload failed for %s: %v", memorialID, err)
		return nil, utils.ErrGatewayUnavailable
	}

	token := s.tokens.Issue(memorialID.String())

	greeting.ImagePath = imagePath
	greeting.VideoPath = ""
	greeting.State = db_models.GreetingStateProcessingAudio
	greeting.JobToken = token

	if err := s.greetingRepo.Upsert(ctx, greeting); err != nil {
		return nil, utils.ErrDatabaseError
	}

	go s.runGeneration(memorialID, token, greeting.AudioPath, imagePath)

	return toGreetingResponse(memorialID, greeting), nil
}

// runGeneration is the long-running job: transcribe, script, render. Every
// write is double-guarded by the in-memory token registry and the persisted
// job token, so a reset issued mid-flight makes the job's results vanish
// instead of resurrecting a cleared record.
func (s *GreetingService) runGeneration(memorialID uuid.UUID, token string, audioPath string, imagePath string) {

	ctx := context.Background()
	key := memorialID.String()

	transcript, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		log.Printf("greeting: transcription failed for %s: %v", memorialID, err)
		s.failJob(ctx, memorialID, token)
		return
	}

	if !s.tokens.Matches(key, token) {
		return
	}

	script, err := s.scripter.GreetingScript(ctx, transcript)
	if err != nil {
		log.Printf("greeting: script generation failed for %s: %v", memorialID, err)
		s.failJob(ctx, memorialID, token)
		return
	}

	if !s.tokens.Matches(key, token) {
		return
	}

	applied, err := s.greetingRepo.UpdateIfToken(ctx, memorialID, token, map[string]interface{}{
		"state":      db_models.GreetingStateProcessingVideo,
		"transcript": transcript,
	})
	if err != nil || !applied {
		return
	}

	videoPath, err := s.renderer.Render(ctx, RenderRequest{
		AudioPath: audioPath,
		ImagePath: imagePath,
		Script:    script,
	})
	if err != nil {
		log.Printf("greeting: video render failed for %s: %v", memorialID, err)
		s.failJob(ctx, memorialID, token)
		return
	}

	if !s.tokens.Matches(key, token) {
		return
	}

	if _, err := s.greetingRepo.UpdateIfToken(ctx, memorialID, token, map[string]interface{}{
		"video_path": videoPath,
		"state":      db_models.GreetingStateCompleted,
	}); err != nil {
		log.Printf("greeting: completion write failed for %s: %v", memorialID, err)
	}
}

func (s *GreetingService) failJob(ctx context.Context, memorialID uuid.UUID, token string) {
	if !s.tokens.Matches(memorialID.String(), token) {
		return
	}
	if _, err := s.greetingRepo.UpdateIfToken(ctx, memorialID, token, map[string]interface{}{
		"state": db_models.GreetingStateError,
	}); err != nil {
		log.Printf("greeting: error-state write failed for %s: %v", memorialID, err)
	}
}

// Reset is the explicit cancellation primitive. The in-memory token is
// revoked before anything else so cancellation is visible to in-flight jobs
// before Reset returns, then the record and its artifacts are cleared.
func (s *GreetingService) Reset(ctx context.Context, memorialID uuid.UUID) error {

	s.tokens.Revoke(memorialID.String())

	greeting, err := s.greetingRepo.GetByMemorialID(ctx, memorialID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if greeting == nil {
		return nil
	}

	newToken, err := utils.GenerateSecureToken(16)
	if err != nil {
		newToken = uuid.New().String()
	}

	if err := s.greetingRepo.Reset(ctx, memorialID, newToken); err != nil {
		return utils.ErrDatabaseError
	}

	// Best-effort artifact cleanup; the record is already authoritative.
	for _, path := range []string{greeting.AudioPath, greeting.ImagePath, greeting.VideoPath} {
		if path == "" {
			continue
		}
		if err := s.store.Delete(ctx, path); err != nil {
			log.Printf("greeting: artifact cleanup failed for %s: %v", path, err)
		}
	}

	return nil
}

// SuggestPhoto ranks the memorial's gallery against a free-text hint and
// returns the closest portrait for the image-selection step.
func (s *GreetingService) SuggestPhoto(ctx context.Context, memorialID uuid.UUID, hint string) (*response_models.SuggestedPhotoResponse, error) {

	if hint == "" {
		return nil, utils.ErrInvalidInput
	}
	if err := s.requireMemorial(ctx, memorialID); err != nil {
		return nil, err
	}

	vector, err := s.embedder.Embed(ctx, hint)
	if err != nil {
		log.Printf("greeting: embedding failed for %s: %v", memorialID, err)
		return nil, utils.ErrGatewayUnavailable
	}

	photo, err := s.memorialRepo.NearestPhoto(ctx, memorialID, vector)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if photo == nil {
		return nil, utils.ErrNotFound
	}

	return &response_models.SuggestedPhotoResponse{
		PhotoID: photo.PhotoID,
		Path:    photo.Path,
		Caption: photo.Caption,
	}, nil
}

func (s *GreetingService) requireMemorial(ctx context.Context, memorialID uuid.UUID) error {
	memorial, err := s.memorialRepo.GetByID(ctx, memorialID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if memorial == nil {
		return utils.ErrNotFound
	}
	return nil
}

func toGreetingResponse(memorialID uuid.UUID, greeting *db_models.AiGreeting) *response_models.GreetingResponse {
	resp := &response_models.GreetingResponse{
		MemorialID: memorialID.String(),
		Stage:      string(StageFor(greeting)),
	}
	if greeting != nil {
		resp.State = string(greeting.State)
		resp.AudioPath = greeting.AudioPath
		resp.ImagePath = greeting.ImagePath
		resp.VideoPath = greeting.VideoPath
	}
	return resp
}
