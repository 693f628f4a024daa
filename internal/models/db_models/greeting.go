package db_models

import (
	"github.com/google/uuid"
)

type GreetingState string

const (
	GreetingStateReady           GreetingState = "ready"
	GreetingStateProcessingAudio GreetingState = "processing_audio"
	GreetingStateProcessingVideo GreetingState = "processing_video"
	GreetingStateCompleted       GreetingState = "completed"
	GreetingStateError           GreetingState = "error"
)

// AiGreeting holds the single per-memorial greeting generation record.
// Mutated only by the generation job (guarded by JobToken) and by an
// explicit user reset.
type AiGreeting struct {
	MemorialID uuid.UUID `gorm:"type:uuid;primaryKey"`

	AudioPath string `gorm:"size:512"`
	ImagePath string `gorm:"size:512"`
	VideoPath string `gorm:"size:512"`

	Transcript string `gorm:"type:text"`

	State GreetingState `gorm:"size:24"`

	// JobToken identifies the generation run allowed to write results.
	// Reset rotates it, so a job started before the reset can no longer
	// touch the record.
	JobToken string `gorm:"size:64"`

	CreatedAt int64 `gorm:"autoCreateTime"`
	UpdatedAt int64 `gorm:"autoUpdateTime"`
}

func (g *AiGreeting) Processing() bool {
	return g.State == GreetingStateProcessingAudio || g.State == GreetingStateProcessingVideo
}
