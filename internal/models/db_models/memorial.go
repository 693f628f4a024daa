package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"time"
)

type Memorial struct {
	BaseModel
	Slug    string         `gorm:"size:128;uniqueIndex"`
	Name    string         `gorm:"size:256"`
	OwnerID uuid.UUID      `gorm:"index"`
	Tags    pq.StringArray `gorm:"type:text[]"`
}

// MemorialPhoto is a gallery photo with a caption embedding, used to suggest
// a portrait for the AI greeting by vector similarity.
type MemorialPhoto struct {
	PhotoID    string          `gorm:"primaryKey;column:photo_id"`
	MemorialID uuid.UUID       `gorm:"type:uuid;index"`
	Path       string          `gorm:"size:512"`
	Caption    string          `gorm:"type:text"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}
