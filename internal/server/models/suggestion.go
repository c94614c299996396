package models

import "time"

// SuggestionStatus is the review state of a suggestion. New suggestions are
// pending; only an admin moves them to any other state.
type SuggestionStatus string

const (
	StatusPending     SuggestionStatus = "pending"
	StatusApproved    SuggestionStatus = "approved"
	StatusRejected    SuggestionStatus = "rejected"
	StatusImplemented SuggestionStatus = "implemented"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusImplemented:
		return true
	}
	return false
}

// Suggestion is an improvement idea submitted by a teacher.
type Suggestion struct {
	ID            string           `json:"id"`
	TeacherID     string           `json:"teacher_id"`
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	Status        SuggestionStatus `json:"status"`
	AdminFeedback *string          `json:"admin_feedback"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
