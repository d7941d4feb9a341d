package app

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"kwikquiz/internal/domain"
)

// feedbackSeconds is how long the correct/incorrect feedback stays on screen
// before the session advances.
const feedbackSeconds = 2

// SessionState is the play-session phase.
type SessionState int

const (
	StateAwaitingAnswer SessionState = iota
	StateShowingFeedback
	StateCompleted
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting-answer"
	case StateShowingFeedback:
		return "showing-feedback"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Scheduler schedules a single deferred callback. The returned cancel stops
// the callback if it has not fired yet. The production implementation wraps
// time.AfterFunc; tests inject a manual one for deterministic transitions.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

func (timerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// NewTimerScheduler returns the wall-clock scheduler used outside tests.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

// SessionSnapshot is an immutable view of a play session, broadcast to
// subscribers on every observable change.
type SessionSnapshot struct {
	State         SessionState
	QuestionIndex int
	TimeRemaining int
	Selected      int
	WasCorrect    bool
}

// PlaySession drives one player through one quiz under a per-question
// countdown. At most one timer callback is pending at any moment: every
// transition cancels the previous timer before scheduling the next, so a
// stale tick can never fire into a state that has moved on.
type PlaySession struct {
	quiz       domain.Quiz
	playerName string
	sched      Scheduler
	now        func() time.Time
	newID      func() string
	onComplete func(domain.QuizResult)

	mu            sync.Mutex
	started       bool
	state         SessionState
	questionIndex int
	timeRemaining int
	selected      int
	answers       []int
	lastCorrect   bool
	result        domain.QuizResult
	cancelTimer   func()
	subscribers   map[chan SessionSnapshot]struct{}
}

// NewPlaySession builds a session with the wall-clock scheduler. onComplete
// receives the final result once; recording it is fire-and-forget relative
// to the completing transition.
func NewPlaySession(quiz domain.Quiz, playerName string, onComplete func(domain.QuizResult)) *PlaySession {
	return NewPlaySessionWithScheduler(quiz, playerName, onComplete, NewTimerScheduler(), time.Now)
}

// NewPlaySessionWithScheduler is the test seam for deterministic timers and
// timestamps.
func NewPlaySessionWithScheduler(quiz domain.Quiz, playerName string, onComplete func(domain.QuizResult), sched Scheduler, now func() time.Time) *PlaySession {
	return &PlaySession{
		quiz:        quiz,
		playerName:  playerName,
		sched:       sched,
		now:         now,
		newID:       uuid.NewString,
		onComplete:  onComplete,
		selected:    domain.NoAnswer,
		subscribers: make(map[chan SessionSnapshot]struct{}),
	}
}

// Quiz returns the quiz being played.
func (s *PlaySession) Quiz() domain.Quiz {
	return s.quiz
}

// Start enters AwaitingAnswer for the first question and arms the countdown.
// Starting twice is a contract violation.
func (s *PlaySession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return domain.ErrInvalidTransition
	}
	s.started = true
	s.state = StateAwaitingAnswer
	s.questionIndex = 0
	s.timeRemaining = s.quiz.SecondsPerQuestion
	s.selected = domain.NoAnswer
	s.scheduleLocked(time.Second, s.tick)
	s.broadcastLocked()
	return nil
}

// Select marks option as the candidate answer. The player may change it any
// number of times until submit or timeout.
func (s *PlaySession) Select(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.state != StateAwaitingAnswer {
		return domain.ErrInvalidTransition
	}
	question := s.quiz.Questions[s.questionIndex]
	if option < 0 || option >= len(question.Options) {
		return domain.ErrInvalidTransition
	}
	s.selected = option
	s.broadcastLocked()
	return nil
}

// Submit commits the candidate answer. Submitting with no candidate, before
// Start, or once feedback has begun is rejected so an answer can never be
// double-counted.
func (s *PlaySession) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.state != StateAwaitingAnswer || s.selected == domain.NoAnswer {
		return domain.ErrInvalidTransition
	}
	s.commitLocked(s.selected)
	return nil
}

// tick fires once per second while a question is open.
func (s *PlaySession) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingAnswer {
		return
	}
	s.timeRemaining--
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.timeExpiredLocked()
	} else {
		s.scheduleLocked(time.Second, s.tick)
	}
	s.broadcastLocked()
}

// timeExpiredLocked commits the candidate answer if one was selected before
// expiry, otherwise records the no-answer sentinel.
func (s *PlaySession) timeExpiredLocked() {
	if s.selected != domain.NoAnswer {
		s.commitLocked(s.selected)
		return
	}
	s.answers = append(s.answers, domain.NoAnswer)
	s.lastCorrect = false
	s.enterFeedbackLocked()
}

func (s *PlaySession) commitLocked(option int) {
	question := s.quiz.Questions[s.questionIndex]
	s.answers = append(s.answers, option)
	s.lastCorrect = option == question.CorrectIndex
	s.enterFeedbackLocked()
}

func (s *PlaySession) enterFeedbackLocked() {
	s.state = StateShowingFeedback
	s.scheduleLocked(feedbackSeconds*time.Second, s.feedbackElapsed)
	s.broadcastLocked()
}

// feedbackElapsed advances to the next question or completes the session.
func (s *PlaySession) feedbackElapsed() {
	s.mu.Lock()
	if s.state != StateShowingFeedback {
		s.mu.Unlock()
		return
	}

	if s.questionIndex == len(s.quiz.Questions)-1 {
		s.completeLocked()
		result := s.result
		s.broadcastLocked()
		s.mu.Unlock()
		if s.onComplete != nil {
			s.onComplete(result)
		}
		return
	}

	s.questionIndex++
	s.timeRemaining = s.quiz.SecondsPerQuestion
	s.selected = domain.NoAnswer
	s.state = StateAwaitingAnswer
	s.scheduleLocked(time.Second, s.tick)
	s.broadcastLocked()
	s.mu.Unlock()
}

// completeLocked scores the answer log and freezes the session. Any question
// that somehow has no logged answer is padded with the sentinel first, so
// the log length always equals the question count.
func (s *PlaySession) completeLocked() {
	for len(s.answers) < len(s.quiz.Questions) {
		s.answers = append(s.answers, domain.NoAnswer)
	}

	score := 0
	for i, answer := range s.answers {
		if answer == s.quiz.Questions[i].CorrectIndex {
			score++
		}
	}

	s.result = domain.QuizResult{
		ID:             s.newID(),
		QuizID:         s.quiz.ID,
		QuizTitle:      s.quiz.Title,
		PlayerName:     s.playerName,
		Score:          score,
		TotalQuestions: len(s.quiz.Questions),
		CompletedAt:    s.now().UTC(),
	}
	s.state = StateCompleted
	s.cancelTimerLocked()
}

// scheduleLocked replaces the pending timer, keeping the single-flight
// invariant: cancel first, then arm.
func (s *PlaySession) scheduleLocked(d time.Duration, fn func()) {
	s.cancelTimerLocked()
	s.cancelTimer = s.sched.Schedule(d, fn)
}

func (s *PlaySession) cancelTimerLocked() {
	if s.cancelTimer != nil {
		s.cancelTimer()
		s.cancelTimer = nil
	}
}

// Snapshot returns the current observable state.
func (s *PlaySession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Answers returns a copy of the answer log.
func (s *PlaySession) Answers() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.answers))
	copy(out, s.answers)
	return out
}

// Result returns the final result once the session has completed.
func (s *PlaySession) Result() (domain.QuizResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCompleted {
		return domain.QuizResult{}, false
	}
	return s.result, true
}

// Subscribe returns a channel receiving a snapshot on every state change,
// primed with the current one. The caller must invoke cancel to avoid leaks.
func (s *PlaySession) Subscribe() (<-chan SessionSnapshot, func()) {
	ch := make(chan SessionSnapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *PlaySession) broadcastLocked() {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the oldest pending snapshot so a slow reader only ever
			// lags, never blocks a transition.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (s *PlaySession) snapshotLocked() SessionSnapshot {
	return SessionSnapshot{
		State:         s.state,
		QuestionIndex: s.questionIndex,
		TimeRemaining: s.timeRemaining,
		Selected:      s.selected,
		WasCorrect:    s.lastCorrect,
	}
}
