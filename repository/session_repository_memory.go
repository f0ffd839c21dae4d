package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"emi-calculator/domain"
)

type session struct {
	params   domain.LoanParameters
	lastSeen time.Time
}

// SessionRepositoryMemory is an in-memory SessionRepository. Idle sessions
// are swept once they have not been touched for ttl.
type SessionRepositoryMemory struct {
	mu        sync.Mutex
	ttl       time.Duration
	sessions  map[string]*session
	now       func() time.Time
	stopSweep chan struct{}
}

// NewSessionRepositoryMemory creates the repository and starts its sweep loop.
// Call Stop to end the loop.
func NewSessionRepositoryMemory(ttl time.Duration) *SessionRepositoryMemory {
	return newSessionRepositoryMemory(ttl, time.Now)
}

func newSessionRepositoryMemory(ttl time.Duration, now func() time.Time) *SessionRepositoryMemory {
	r := &SessionRepositoryMemory{
		ttl:       ttl,
		sessions:  make(map[string]*session),
		now:       now,
		stopSweep: make(chan struct{}),
	}
	go r.sweepLoop()
	return r
}

func (r *SessionRepositoryMemory) sweepLoop() {
	interval := r.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stopSweep:
			return
		}
	}
}

func (r *SessionRepositoryMemory) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
		}
	}
}

func (r *SessionRepositoryMemory) Stop() {
	close(r.stopSweep)
}

func (r *SessionRepositoryMemory) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRepositoryMemory) Create(params domain.LoanParameters) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id.String()] = &session{params: params, lastSeen: r.now()}
	return id.String(), nil
}

func (r *SessionRepositoryMemory) Get(id string) (domain.LoanParameters, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.lookup(id)
	if err != nil {
		return domain.LoanParameters{}, err
	}
	return s.params, nil
}

func (r *SessionRepositoryMemory) Update(
	id string,
	fn func(domain.LoanParameters) domain.LoanParameters,
) (domain.LoanParameters, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.lookup(id)
	if err != nil {
		return domain.LoanParameters{}, err
	}
	s.params = fn(s.params)
	return s.params, nil
}

func (r *SessionRepositoryMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// lookup must be called with r.mu held. It refreshes lastSeen.
func (r *SessionRepositoryMemory) lookup(id string) (*session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := r.now()
	if r.expired(s, now) {
		delete(r.sessions, id)
		return nil, ErrSessionNotFound
	}
	s.lastSeen = now
	return s, nil
}

func (r *SessionRepositoryMemory) expired(s *session, now time.Time) bool {
	return r.ttl > 0 && now.Sub(s.lastSeen) > r.ttl
}
