package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StepRecord struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index:idx_step_records_session_step,unique,priority:1"`
	Step      int            `gorm:"not null;index:idx_step_records_session_step,unique,priority:2"`
	Name      string         `gorm:"type:text;not null"`
	Category  string         `gorm:"type:varchar(40);not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (StepRecord) TableName() string {
	return "step_records"
}
