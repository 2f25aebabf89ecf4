// internal/app/sessions.go
package app

import (
	"sync"
	"time"

	"lesson_planning_bot/internal/domain/wizard"

	"github.com/sirupsen/logrus"
)

type session struct {
	wizard   *Wizard
	lastSeen time.Time
}

// Sessions keeps one Wizard per chat until it is closed or evicted as idle.
type Sessions struct {
	mu        sync.Mutex
	byChat    map[int64]*session
	onEvict   []func(chatID int64)
	variant   wizard.Variant
	submitter *SubmissionService
	logger    *logrus.Entry
	now       func() time.Time
}

func NewSessions(variant wizard.Variant, submitter *SubmissionService, logger *logrus.Entry) *Sessions {
	return &Sessions{
		byChat:    make(map[int64]*session),
		variant:   variant,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
	}
}

// OnEvict registers fn to be called for every chat dropped by EvictIdle.
func (s *Sessions) OnEvict(fn func(chatID int64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvict = append(s.onEvict, fn)
}

// Get returns the chat's wizard if one is open.
func (s *Sessions) Get(chatID int64) (*Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byChat[chatID]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.wizard, true
}

// Open returns the chat's wizard, creating it on first use.
func (s *Sessions) Open(chatID int64) *Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.byChat[chatID]; ok {
		e.lastSeen = s.now()
		return e.wizard
	}
	w := NewWizard(chatID, s.variant, s.submitter, s.logger)
	s.byChat[chatID] = &session{wizard: w, lastSeen: s.now()}
	s.logger.WithField("chat_id", chatID).Info("Wizard session opened")
	return w
}

// Close discards the chat's wizard unless it is submitting.
func (s *Sessions) Close(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byChat[chatID]
	if !ok {
		return nil
	}
	if st, _ := e.wizard.Status(); st.InProgress() {
		return ErrSubmissionInProgress
	}
	delete(s.byChat, chatID)
	s.logger.WithField("chat_id", chatID).Info("Wizard session closed")
	return nil
}

// EvictIdle drops every session not touched for maxIdle and returns how many
// were dropped. Sessions with a submission in flight are kept.
func (s *Sessions) EvictIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	cutoff := s.now().Add(-maxIdle)
	var evicted []int64
	for chatID, e := range s.byChat {
		if e.lastSeen.After(cutoff) {
			continue
		}
		if st, _ := e.wizard.Status(); st.InProgress() {
			continue
		}
		delete(s.byChat, chatID)
		evicted = append(evicted, chatID)
	}
	hooks := s.onEvict
	s.mu.Unlock()

	for _, chatID := range evicted {
		for _, fn := range hooks {
			fn(chatID)
		}
	}
	if len(evicted) > 0 {
		s.logger.WithField("evicted", len(evicted)).Info("Idle wizard sessions evicted")
	}
	return len(evicted)
}

// Count is the number of open sessions.
func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byChat)
}
