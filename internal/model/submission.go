package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "PENDING"
	SubmissionApproved  SubmissionStatus = "APPROVED"
	SubmissionRejected  SubmissionStatus = "REJECTED"
	SubmissionScheduled SubmissionStatus = "SCHEDULED"
)

type UploadSource string

const (
	UploadSourcePublic       UploadSource = "public"
	UploadSourcePhotographer UploadSource = "photographer"
)

// Submission 照片墙上的一条投稿（照片和/或留言）
type Submission struct {
	ID           string           `json:"id" gorm:"primaryKey;size:36"`
	PhotoURL     string           `json:"photoUrl,omitempty" gorm:"size:1024"`
	Message      string           `json:"message,omitempty" gorm:"type:text"`
	Username     string           `json:"username,omitempty" gorm:"size:255"`
	Email        string           `json:"email,omitempty" gorm:"size:255"`
	Status       SubmissionStatus `json:"status" gorm:"size:16;not null;index"`
	Displayed    bool             `json:"displayed" gorm:"not null;default:false;index"`
	ScheduledFor *time.Time       `json:"scheduledFor,omitempty" gorm:"index"`
	UploadedBy   *string          `json:"uploadedBy,omitempty" gorm:"size:36;index"`
	UploadSource UploadSource     `json:"uploadSource" gorm:"size:16;not null"`
	CreatedAt    time.Time        `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = SubmissionPending
	}
	if s.UploadSource == "" {
		s.UploadSource = UploadSourcePublic
	}
	return nil
}

// ParseUploadSource 空值视为 public，未知值返回 false
func ParseUploadSource(raw string) (UploadSource, bool) {
	switch UploadSource(raw) {
	case "":
		return UploadSourcePublic, true
	case UploadSourcePublic, UploadSourcePhotographer:
		return UploadSource(raw), true
	default:
		return "", false
	}
}
