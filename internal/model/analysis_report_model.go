package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnalysisReport struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Sections       datatypes.JSON `gorm:"type:jsonb;not null"`
	ProcessingTime float64        `gorm:"not null;default:0"`
	Engine         string         `gorm:"type:varchar(40)"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (AnalysisReport) TableName() string {
	return "analysis_reports"
}
