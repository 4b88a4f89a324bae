package domain

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the lifecycle status of a meeting
type MeetingStatus string

const (
	MeetingStatusUploading       MeetingStatus = "uploading"
	MeetingStatusProcessingAudio MeetingStatus = "processing_audio"
	MeetingStatusTranscribing    MeetingStatus = "transcribing"
	MeetingStatusProcessingNLP   MeetingStatus = "processing_nlp"
	MeetingStatusSummarizing     MeetingStatus = "summarizing"
	MeetingStatusCompleted       MeetingStatus = "completed"
	MeetingStatusFailed          MeetingStatus = "failed"
)

// successor maps each status to its single legal successor on the happy path.
// Failed is reachable from every non-terminal status, see CanTransition.
var successor = map[MeetingStatus]MeetingStatus{
	MeetingStatusUploading:       MeetingStatusProcessingAudio,
	MeetingStatusProcessingAudio: MeetingStatusTranscribing,
	MeetingStatusTranscribing:    MeetingStatusProcessingNLP,
	MeetingStatusProcessingNLP:   MeetingStatusSummarizing,
	MeetingStatusSummarizing:     MeetingStatusCompleted,
}

// CanTransition reports whether moving from one status to the next is legal
func CanTransition(from, to MeetingStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == MeetingStatusFailed {
		return true
	}
	return successor[from] == to
}

// IsTerminal reports whether the status is terminal
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCompleted || s == MeetingStatusFailed
}

// IsProcessing reports whether the meeting is still being worked on
func (s MeetingStatus) IsProcessing() bool {
	_, ok := successor[s]
	return ok
}

// MeetingCategory represents a meeting category
type MeetingCategory string

const (
	MeetingCategorySales    MeetingCategory = "sales"
	MeetingCategoryPlanning MeetingCategory = "planning"
	MeetingCategoryStandup  MeetingCategory = "standup"
	MeetingCategoryOneOnOne MeetingCategory = "one_on_one"
	MeetingCategoryOther    MeetingCategory = "other"
)

// ValidCategory reports whether the category is a known value
func ValidCategory(c MeetingCategory) bool {
	switch c {
	case MeetingCategorySales, MeetingCategoryPlanning, MeetingCategoryStandup,
		MeetingCategoryOneOnOne, MeetingCategoryOther:
		return true
	}
	return false
}

// ActionItem is a single task extracted from a meeting
type ActionItem struct {
	Description string  `json:"description"`
	Assignee    *string `json:"assignee"`
	Priority    string  `json:"priority,omitempty"`
}

// MeetingSummary is the structured summary produced once processing finishes
type MeetingSummary struct {
	ExecutiveSummary string       `json:"executiveSummary"`
	KeyDecisions     string       `json:"keyDecisions"`
	ActionItems      []ActionItem `json:"actionItems"`
	NextSteps        string       `json:"nextSteps"`
}

// Meeting represents a recorded meeting and its processing state
type Meeting struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Description   string
	Category      MeetingCategory
	Status        MeetingStatus
	TempRef       string
	AudioFilename string
	AudioURL      string
	AudioSize     int64
	Duration      float64
	Transcript    string
	Summary       *MeetingSummary
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StagePayload carries the data merged into a meeting record alongside a status write
type StagePayload struct {
	Transcript *string
	Duration   *float64
}
