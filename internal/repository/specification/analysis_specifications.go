package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySession filters rows belonging to one analysis session.
type BySession struct {
	SessionID uuid.UUID
}

func (s BySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByStatus filters sessions by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByStatuses filters sessions matching any of the given statuses.
type ByStatuses struct {
	Statuses []string
}

func (s ByStatuses) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// FromStep filters step records at or beyond a step index.
type FromStep struct {
	Step int
}

func (s FromStep) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("step >= ?", s.Step)
}
