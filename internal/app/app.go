package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/wailsapp/wails/v3/pkg/application"

	"go.proclama.app/proclama/broadcast"
	"go.proclama.app/proclama/cache"
	"go.proclama.app/proclama/config"
	"go.proclama.app/proclama/content/bible"
	"go.proclama.app/proclama/content/hymnal"
	"go.proclama.app/proclama/content/lyrics"
	"go.proclama.app/proclama/hotkey"
	"go.proclama.app/proclama/internal/types"
	"go.proclama.app/proclama/navigate"
	"go.proclama.app/proclama/projection"
	"go.proclama.app/proclama/render"
)

// Service wires the projection core to the Wails application. This
// struct focuses on orchestration; the state machine, protocol, and
// rendering rules live in their own packages.
type Service struct {
	cfg    *config.Config
	cache  *cache.Cache
	hotkey *hotkey.Manager

	// UI references - set via Init
	app    *application.App
	window application.Window

	// Projection core. The bus, store, and responder form the control
	// context; projector windows attach mirrors to the same bus.
	bus        broadcast.Bus
	store      *projection.Store
	responder  *broadcast.Responder
	controller *navigate.Controller

	preview       *render.View
	previewMirror *broadcast.Mirror

	projMu    sync.Mutex
	projector *projectorLink

	// Content collaborators
	bible  *bible.Library
	hymns  *hymnal.Loader
	decks  map[string]*lyrics.Deck
	deckMu sync.Mutex

	shutdownOnce sync.Once

	version string
}

// New creates a new Service. Call Init() after the Wails app is created.
func New(version string) *Service {
	return &Service{version: version}
}

// GetVersion returns the application version.
func (s *Service) GetVersion() string {
	return s.version
}

// Init initializes the service with app and window references.
// Must be called after the Wails application is created.
func (s *Service) Init(app *application.App, window application.Window) {
	s.app = app
	s.window = window

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		cfg = &config.Config{}
	}
	s.cfg = cfg

	s.setupCache()

	// Control context: bus, store, responder.
	bus := broadcast.NewMemoryBus()
	s.bus = bus
	s.store = projection.NewStore(bus, cfg.Display)
	s.responder = broadcast.NewResponder(bus, s.store.Snapshot)

	// Transport and auto-advance.
	s.controller = navigate.NewController(s.store.SetProjection, cfg.AdvanceInterval())
	s.controller.OnChange(func(state types.TransportState) {
		s.emit(EventTransportState, state)
	})

	// Live preview: same rendering rules as the projector, and the same
	// mirror in front of it. Publishes race once goroutines (hotkeys, the
	// auto-advance ticker, binding calls) mutate concurrently; the mirror
	// keeps a late stale snapshot from regressing one surface but not the
	// other.
	s.preview = render.NewView(0, func(frame render.Frame) {
		s.emit(EventPreviewFrame, frame)
	})
	s.previewMirror = broadcast.NewMirror(bus, s.preview.Apply)

	// Content collaborators share the offline cache.
	s.bible = bible.NewLibrary(s.cache, nil)
	s.hymns = hymnal.NewLoader(s.cache, nil)
	s.decks = make(map[string]*lyrics.Deck)

	s.setupHotkeys()
}

// Shutdown cleans up resources and persists the display settings. Both
// the tray "Sair" item and the control window's closing hook reach here,
// so it runs its teardown exactly once.
func (s *Service) Shutdown() {
	s.shutdownOnce.Do(s.shutdown)
}

func (s *Service) shutdown() {
	if s.hotkey != nil {
		s.hotkey.Stop()
	}
	if s.controller != nil {
		s.controller.Close()
	}
	s.closeProjector()
	if s.previewMirror != nil {
		s.previewMirror.Close()
	}
	if s.preview != nil {
		s.preview.Close()
	}
	if s.responder != nil {
		s.responder.Close()
	}

	if s.cfg != nil && s.store != nil {
		s.cfg.Display = s.store.Snapshot().Settings
		if err := s.cfg.Save(); err != nil {
			slog.Error("save config", "error", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			slog.Error("close cache", "error", err)
		}
	}
}

func (s *Service) setupCache() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		slog.Error("get config dir for cache", "error", err)
		return
	}

	cachePath := filepath.Join(configDir, "proclama", "cache")
	c, err := cache.New(cachePath)
	if err != nil {
		slog.Error("init cache", "error", err)
		return
	}
	s.cache = c
	slog.Info("cache initialized", "path", cachePath)
}

func (s *Service) setupHotkeys() {
	s.hotkey = hotkey.NewManager(
		func() { s.Next() },
		func() { s.Prev() },
		func() { s.ToggleBlackout() },
	)
	if err := s.hotkey.Start(); err != nil {
		slog.Error("start hotkeys", "error", err)
	}
}

// emit sends an event to every window.
func (s *Service) emit(name string, data any) {
	if s.app != nil {
		s.app.Event.Emit(name, data)
	}
}
