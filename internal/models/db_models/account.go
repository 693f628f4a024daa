package db_models

import "gorm.io/datatypes"

type AccountRole string

const (
	RoleUser     AccountRole = "user"
	RoleOperator AccountRole = "operator"
	RoleAdmin    AccountRole = "admin"
)

type Account struct {
	BaseModel
	Email        string      `gorm:"size:256;uniqueIndex"`
	PasswordHash string      `gorm:"size:256"`
	DisplayName  string      `gorm:"size:128"`
	Role         AccountRole `gorm:"size:16;default:'user'"`
	Verified     bool        `gorm:"default:false"`
	Suspended    bool        `gorm:"default:false"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
