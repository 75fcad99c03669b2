package model

import (
	"errors"
	"time"
)

// Participant is a connected student, keyed by its connection id.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Question is a multiple-choice question owned by the active poll.
// Immutable once created.
type Question struct {
	Text             string   `json:"question"`
	Options          []string `json:"options"`
	TimeLimitSeconds int      `json:"timeLimit"`
}

// Validate checks the question shape before it enters the session.
func (q *Question) Validate() error {
	if q.Text == "" {
		return errors.New("question text is required")
	}
	if len(q.Options) < 2 {
		return errors.New("at least two options are required")
	}
	for _, opt := range q.Options {
		if opt == "" {
			return errors.New("options must be non-empty")
		}
	}
	if q.TimeLimitSeconds <= 0 {
		return errors.New("time limit must be positive")
	}
	return nil
}

// ResultEntry is the vote count for one option that received at least
// one answer.
type ResultEntry struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// HistoryEntry is the immutable record of one closed poll.
type HistoryEntry struct {
	ID       int64         `json:"id"`
	Question string        `json:"question"`
	Options  []string      `json:"options"`
	Results  []ResultEntry `json:"results"`
	ClosedAt time.Time     `json:"timestamp"`
}

// TeacherSnapshot is the full-state reply sent to a joining teacher,
// who may connect after state already exists.
type TeacherSnapshot struct {
	Participants    []Participant `json:"participants"`
	CurrentQuestion *Question     `json:"currentQuestion"`
	IsPollActive    bool          `json:"isPollActive"`
}

// NewQuestionBroadcast is the public view of a freshly created poll.
// Server-internal fields (answer map, responder set) never leave the session.
type NewQuestionBroadcast struct {
	Question  string   `json:"question"`
	TimeLimit int      `json:"timeLimit"`
	Options   []string `json:"options"`
}

// AnswerUpdate is the incremental broadcast after a recorded submission.
type AnswerUpdate struct {
	StudentID string `json:"studentId"`
	Answer    string `json:"answer"`
}

// TimeUpdate carries the countdown to all clients once per second.
type TimeUpdate struct {
	SecondsRemaining int `json:"secondsRemaining"`
}

// ChatMessage is a fan-out chat broadcast. SenderID is attached
// server-side from the sending connection.
type ChatMessage struct {
	Text       string `json:"text"`
	SenderName string `json:"senderName,omitempty"`
	SenderID   string `json:"senderId"`
}

// ErrorMessage is a targeted rejection, e.g. for a poll-in-progress create.
type ErrorMessage struct {
	Message string `json:"message"`
}
