// Package hotkey provides global keyboard shortcuts for the transport
// controls, so the operator can advance slides while another window has
// focus.
package hotkey

import (
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
)

// Manager owns the global hook lifecycle. Callbacks run on the hook's
// dispatch goroutine and must not block.
type Manager struct {
	mu      sync.Mutex
	running bool

	onNext     func()
	onPrev     func()
	onBlackout func()
}

// NewManager creates a manager with the given transport callbacks. Any
// callback may be nil.
func NewManager(onNext, onPrev, onBlackout func()) *Manager {
	return &Manager{onNext: onNext, onPrev: onPrev, onBlackout: onBlackout}
}

// Start registers the shortcuts and begins listening. Page-style keys
// mirror what presentation remotes emit.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil
	}

	register := func(keys [][]string, fn func()) {
		if fn == nil {
			return
		}
		for _, combo := range keys {
			hook.Register(hook.KeyDown, combo, func(e hook.Event) {
				fn()
			})
		}
	}

	register([][]string{{"right"}, {"pagedown"}}, m.onNext)
	register([][]string{{"left"}, {"pageup"}}, m.onPrev)
	register([][]string{{"b", "ctrl"}}, m.onBlackout)

	events := hook.Start()
	go func() {
		<-hook.Process(events)
	}()

	m.running = true
	slog.Info("global hotkeys registered")
	return nil
}

// Stop unhooks all shortcuts.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	hook.End()
	m.running = false
}
