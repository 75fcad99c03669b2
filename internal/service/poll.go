package service

import (
	"log"
	"sync"

	"classpoll/internal/model"
)

// PollService owns the single poll session: the current question, the
// collected answers, the roster and the countdown. Every inbound event
// and timer callback runs to completion under one mutex, so a partially
// applied transition is never observable.
type PollService struct {
	mu      sync.Mutex
	roster  *Roster
	answers *AnswerSet
	history *HistoryLog
	timer   *Countdown

	current *model.Question
	active  bool

	// Poll generation. Timer callbacks capture the generation they were
	// started for; callbacks from a replaced countdown are ignored.
	epoch uint64

	// Responder set frozen at poll creation. Students joining mid-poll
	// may answer but cannot delay auto-closure. Shrinks on disconnect
	// and kick.
	expected      map[string]struct{}
	hadResponders bool

	broadcaster Broadcaster
}

// NewPollService creates the session coordinator.
func NewPollService(roster *Roster, history *HistoryLog, timer *Countdown) *PollService {
	return &PollService{
		roster:  roster,
		answers: NewAnswerSet(),
		history: history,
		timer:   timer,
	}
}

// SetBroadcaster injects the WebSocket hub.
func (s *PollService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// JoinStudent adds the connection to the roster, or updates the name if
// it already joined. The joining client gets a targeted ack; everyone
// gets the updated roster.
func (s *PollService) JoinStudent(id, name string) model.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, created := s.roster.Join(id, name)
	if created {
		log.Printf("Student %s joined with name %q", id, name)
		s.broadcaster.SendTo(id, EventJoined, p)
	} else {
		log.Printf("Student %s renamed to %q", id, name)
	}
	s.broadcaster.BroadcastAll(EventUpdateParticipants, s.roster.List())
	return p
}

// JoinTeacher replies with a full-state snapshot. The teacher may
// connect after state already exists, so incremental events are not
// enough to catch up.
func (s *PollService) JoinTeacher(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("Teacher %s joined", id)
	s.broadcaster.SendTo(id, EventTeacherJoined, model.TeacherSnapshot{
		Participants:    s.roster.List(),
		CurrentQuestion: s.current,
		IsPollActive:    s.active,
	})
}

// CreatePoll installs a new question and starts the countdown. Rejected
// with ErrPollInProgress while students are still answering the current
// question; state is unchanged on rejection.
func (s *PollService) CreatePoll(q model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active && s.hadResponders && !s.allExpectedAnsweredLocked() {
		return ErrPollInProgress
	}

	s.timer.Cancel()
	s.answers.Reset()

	question := q
	s.current = &question
	s.active = true

	s.expected = make(map[string]struct{})
	for _, p := range s.roster.List() {
		s.expected[p.ID] = struct{}{}
	}
	s.hadResponders = len(s.expected) > 0

	log.Printf("Poll created: %q (%d options, %ds, %d expected responders)",
		question.Text, len(question.Options), question.TimeLimitSeconds, len(s.expected))

	s.broadcaster.BroadcastAll(EventNewQuestion, model.NewQuestionBroadcast{
		Question:  question.Text,
		TimeLimit: question.TimeLimitSeconds,
		Options:   question.Options,
	})

	s.epoch++
	epoch := s.epoch
	s.timer.Start(question.TimeLimitSeconds,
		func(remaining int) { s.handleTick(epoch, remaining) },
		func() { s.handleExpiry(epoch) })
	return nil
}

// SubmitAnswer records a student's answer, last write wins. Submissions
// while no poll is active are silently discarded. Recording the final
// outstanding answer closes the poll immediately.
func (s *PollService) SubmitAnswer(id, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		log.Printf("Dropping answer from %s: no active poll", id)
		return
	}
	if !s.roster.Has(id) {
		log.Printf("Dropping answer from %s: not on the roster", id)
		return
	}

	s.answers.Set(id, answer)
	s.broadcaster.BroadcastAll(EventUpdateAnswers, model.AnswerUpdate{
		StudentID: id,
		Answer:    answer,
	})

	if s.hadResponders && s.allExpectedAnsweredLocked() {
		log.Println("All students have answered, closing poll")
		s.closeLocked()
	}
}

// ClosePoll ends the active poll: cancels the countdown, aggregates the
// results, appends a history entry and broadcasts the results. Calling
// it with no active poll is a no-op. First of "everyone answered" or
// "timer expired" wins; the loser of that race lands here harmlessly.
func (s *PollService) ClosePoll() []model.ResultEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

// ResetPoll clears the question, answers and countdown. Always legal.
func (s *PollService) ResetPoll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer.Cancel()
	s.current = nil
	s.active = false
	s.answers.Reset()
	s.expected = nil
	s.hadResponders = false

	log.Println("Poll reset")
	s.broadcaster.BroadcastAll(EventPollReset, nil)
}

// RemoveStudent kicks a student: targeted kickedOut, roster removal,
// answer pruned, roster broadcast. Removing an unknown id is a full
// no-op: nothing is sent and the roster is not rebroadcast.
func (s *PollService) RemoveStudent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roster.Has(id) {
		log.Printf("Ignoring removal of unknown student %s", id)
		return
	}

	log.Printf("Removing student %s", id)
	s.broadcaster.SendTo(id, EventKickedOut, nil)
	s.removeLocked(id)
}

// HandleDisconnect is the transport's cancellation signal: the
// participant leaves the roster, any pending answer is discarded and
// the shrunk roster is broadcast, exactly as if the student had been
// removed by the teacher.
func (s *PollService) HandleDisconnect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("Connection %s disconnected", id)
	s.removeLocked(id)
}

// History returns all closed polls in closure order.
func (s *PollService) History() []model.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.List()
}

func (s *PollService) removeLocked(id string) {
	s.roster.Remove(id)
	s.answers.Delete(id)
	delete(s.expected, id)

	s.broadcaster.BroadcastAll(EventUpdateParticipants, s.roster.List())

	// The departed student may have been the last one holding the poll
	// open.
	if s.active && s.hadResponders && s.allExpectedAnsweredLocked() {
		log.Println("All remaining students have answered, closing poll")
		s.closeLocked()
	}
}

func (s *PollService) closeLocked() []model.ResultEntry {
	if !s.active {
		return nil
	}

	s.timer.Cancel()
	s.active = false

	results := Aggregate(s.answers)
	if s.current != nil {
		entry := s.history.Append(s.current, results)
		log.Printf("Poll closed: %q -> %d result entries (history id %d)",
			s.current.Text, len(results), entry.ID)
	}

	s.current = nil
	s.answers.Reset()
	s.expected = nil
	s.hadResponders = false

	s.broadcaster.BroadcastAll(EventShowResults, results)
	return results
}

func (s *PollService) allExpectedAnsweredLocked() bool {
	for id := range s.expected {
		if _, ok := s.answers.Get(id); !ok {
			return false
		}
	}
	return true
}

func (s *PollService) handleTick(epoch uint64, remaining int) {
	s.mu.Lock()
	stale := epoch != s.epoch
	s.mu.Unlock()
	if stale {
		return
	}
	s.broadcaster.BroadcastAll(EventTimeUpdate, model.TimeUpdate{SecondsRemaining: remaining})
}

func (s *PollService) handleExpiry(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A cancelled countdown's expiry can still arrive after a newer poll
	// took its place; it must never close that poll.
	if epoch != s.epoch {
		log.Println("Ignoring expiry from a replaced countdown")
		return
	}
	if !s.active {
		return
	}

	log.Println("Timer reached 0, closing poll")
	s.closeLocked()
}
