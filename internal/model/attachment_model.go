package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attachment struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   *uuid.UUID `gorm:"type:uuid;index"`
	FileName    string     `gorm:"type:text;not null"`
	StoredPath  string     `gorm:"type:text;not null"`
	ContentType string     `gorm:"type:varchar(120)"`
	SizeBytes   int64      `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Attachment) TableName() string {
	return "attachments"
}
