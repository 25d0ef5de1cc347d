package services

import (
	"sync"

	"dicebank-backend/internal/models"
)

// BankrollStore owns the balance and bet history shared by every screen.
// Subscribers are called synchronously after each mutation, outside the lock,
// so they may read the store again.
type BankrollStore struct {
	mu      sync.RWMutex
	balance float64
	// oldest first; snapshots reverse it
	history []models.BetRecord

	subMu       sync.Mutex
	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	fn func(models.BankrollState)
}

func NewBankrollStore(initialBalance float64) *BankrollStore {
	return &BankrollStore{balance: initialBalance}
}

func (s *BankrollStore) GetState() models.BankrollState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]models.BetRecord, len(s.history))
	for i, rec := range s.history {
		history[len(s.history)-1-i] = rec
	}

	return models.BankrollState{
		Balance: s.balance,
		History: history,
	}
}

func (s *BankrollStore) Balance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance
}

// SetBalance replaces the balance. No clamping or validation happens here.
func (s *BankrollStore) SetBalance(amount float64) {
	s.mu.Lock()
	s.balance = amount
	s.mu.Unlock()

	s.notify()
}

// AddBetRecord puts record at the front of the history.
func (s *BankrollStore) AddBetRecord(record models.BetRecord) {
	s.mu.Lock()
	s.history = append(s.history, record)
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers fn for state changes and returns a func that removes it.
func (s *BankrollStore) Subscribe(fn func(models.BankrollState)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()

		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *BankrollStore) notify() {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()

	if len(subs) == 0 {
		return
	}

	state := s.GetState()
	for _, sub := range subs {
		sub.fn(state)
	}
}
