package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalysisSession struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Segmento              string    `gorm:"type:text;not null"`
	Produto               string    `gorm:"type:text"`
	PublicoAlvo           string    `gorm:"type:text"`
	ObjetivosEstrategicos string    `gorm:"type:text"`
	ContextoAdicional     string    `gorm:"type:text"`
	Query                 string    `gorm:"type:text"`
	Status                string    `gorm:"type:varchar(20);not null;index"`
	CurrentStep           int       `gorm:"not null;default:0"`
	StepsSaved            int       `gorm:"not null;default:0"`
	ErrorMessage          string    `gorm:"type:text"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
	CompletedAt           *time.Time
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

func (AnalysisSession) TableName() string {
	return "analysis_sessions"
}
