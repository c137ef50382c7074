package llm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/elee1766/pocketllm/src/agent"
)

// SessionState is what observers see of the manager. IsResponding implies
// HasActiveSession.
type SessionState struct {
	HasActiveSession bool
	IsResponding     bool
}

type ManagerConfig struct {
	Runtime Runtime
	Toolbox *agent.DefaultToolbox
	// Instructions is called once, when the session is created.
	Instructions func() string
	HistoryLimit int
	Logger       *slog.Logger
	// OnStateChange is called after every state transition, outside the lock.
	OnStateChange func(SessionState)
}

// Manager owns the single model session. The session is created on the
// first Generate and reused afterwards; at most one Generate runs at a time
// and any overlapping call fails with ErrSessionBusy.
//
// There is no timeout: a Respond that never returns keeps the manager busy.
type Manager struct {
	runtime      Runtime
	toolbox      *agent.DefaultToolbox
	instructions func() string
	historyLimit int
	logger       *slog.Logger
	onState      func(SessionState)

	mu         sync.Mutex
	session    Session
	responding bool
}

func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Runtime == nil {
		return nil, fmt.Errorf("runtime is required")
	}
	if cfg.Toolbox == nil {
		cfg.Toolbox = agent.NewToolbox[agent.Tool]()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Manager{
		runtime:      cfg.Runtime,
		toolbox:      cfg.Toolbox,
		instructions: cfg.Instructions,
		historyLimit: cfg.HistoryLimit,
		logger:       cfg.Logger,
		onState:      cfg.OnStateChange,
	}, nil
}

// CheckAvailability probes the runtime.
func (m *Manager) CheckAvailability(ctx context.Context) Availability {
	return m.runtime.Availability(ctx)
}

// State returns a snapshot of the session state.
func (m *Manager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() SessionState {
	return SessionState{
		HasActiveSession: m.session != nil,
		IsResponding:     m.responding,
	}
}

func (m *Manager) notify(s SessionState) {
	if m.onState != nil {
		m.onState(s)
	}
}

// Generate sends prompt to the session and returns the model's final text.
func (m *Manager) Generate(ctx context.Context, prompt string) (string, error) {
	avail := m.runtime.Availability(ctx)
	if !avail.Available {
		m.logger.Warn("model unavailable", "availability", avail.String())
		return "", &UnavailableError{Availability: avail}
	}

	m.mu.Lock()
	if m.responding {
		m.mu.Unlock()
		return "", ErrSessionBusy
	}
	if m.session == nil {
		cfg := SessionConfig{
			Toolbox:      m.toolbox,
			HistoryLimit: m.historyLimit,
		}
		if m.instructions != nil {
			cfg.Instructions = m.instructions()
		}
		sess, err := m.runtime.NewSession(ctx, cfg)
		if err != nil {
			m.mu.Unlock()
			return "", fmt.Errorf("create session: %w", err)
		}
		m.logger.Info("model session created", "tools", m.toolbox.Names())
		m.session = sess
	}
	sess := m.session
	m.responding = true
	state := m.stateLocked()
	m.mu.Unlock()
	m.notify(state)

	defer func() {
		m.mu.Lock()
		m.responding = false
		state := m.stateLocked()
		m.mu.Unlock()
		m.notify(state)
	}()

	text, err := sess.Respond(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate response: %w", err)
	}
	return text, nil
}
