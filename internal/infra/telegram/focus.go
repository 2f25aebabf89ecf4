package telegram

import (
	"sync"

	"lesson_planning_bot/internal/domain/planning"
)

// focus is the period and week that free text and files are applied to.
type focus struct {
	Period int
	Week   int
}

func (f focus) clamp(periods int) focus {
	if f.Period >= periods {
		f.Period = periods - 1
	}
	if f.Period < 0 {
		f.Period = 0
	}
	if f.Week < 0 || f.Week >= len(planning.Weeks) {
		f.Week = 0
	}
	return f
}

// next moves to the following week, wrapping into the next period.
func (f focus) next(periods int) focus {
	if f.Week < len(planning.Weeks)-1 {
		f.Week++
	} else if f.Period < periods-1 {
		f.Period++
		f.Week = 0
	}
	return f
}

func (f focus) prev() focus {
	if f.Week > 0 {
		f.Week--
	} else if f.Period > 0 {
		f.Period--
		f.Week = len(planning.Weeks) - 1
	}
	return f
}

type focusStore struct {
	mu     sync.Mutex
	byChat map[int64]focus
}

func newFocusStore() *focusStore {
	return &focusStore{byChat: make(map[int64]focus)}
}

func (s *focusStore) get(chatID int64) focus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byChat[chatID]
}

func (s *focusStore) set(chatID int64, f focus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byChat[chatID] = f
}

func (s *focusStore) clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byChat, chatID)
}
