package app

import (
	"log/slog"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"go.proclama.app/proclama/broadcast"
	"go.proclama.app/proclama/render"
)

// projectorLink ties one projector window to the sync channel: a mirror
// consuming SYNC_STATE and a view turning applied snapshots into frames
// for that window to paint.
type projectorLink struct {
	win    application.Window
	mirror *broadcast.Mirror
	view   *render.View
}

// OpenProjector opens (or refocuses) the projector window and attaches
// it to the broadcast channel. The window loads the same frontend in
// projector mode, selected by a URL query parameter.
func (s *Service) OpenProjector() {
	s.projMu.Lock()
	if s.projector != nil {
		win := s.projector.win
		s.projMu.Unlock()
		win.Show()
		win.Focus()
		return
	}
	s.projMu.Unlock()

	win := s.app.Window.NewWithOptions(application.WebviewWindowOptions{
		Title:     "Proclama — Projetor",
		Width:     1280,
		Height:    720,
		URL:       "/?mode=projector",
		Frameless: true,
	})

	view := render.NewView(0, func(frame render.Frame) {
		s.emit(EventProjectorFrame, frame)
		s.emitProjectorStatus()
	})
	mirror := broadcast.NewMirror(s.bus, view.Apply)

	link := &projectorLink{win: win, mirror: mirror, view: view}
	s.projMu.Lock()
	s.projector = link
	s.projMu.Unlock()

	win.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		s.closeProjector()
	})

	slog.Info("projector window opened")
	s.emitProjectorStatus()
}

// closeProjector detaches the projector from the channel and cancels
// its transition timer. Idempotent.
func (s *Service) closeProjector() {
	s.projMu.Lock()
	link := s.projector
	s.projector = nil
	s.projMu.Unlock()

	if link == nil {
		return
	}
	link.mirror.Close()
	link.view.Close()
	slog.Info("projector window closed")
	s.emitProjectorStatus()
}

// RequestSync re-requests a full snapshot for the projector, e.g. after
// its webview reloads. Harmless without a projector.
func (s *Service) RequestSync() {
	s.projMu.Lock()
	link := s.projector
	s.projMu.Unlock()

	if link != nil {
		link.mirror.Resync()
	}
}

// GetProjectorStatus reports whether the projector window is open and
// whether it has received its first snapshot.
func (s *Service) GetProjectorStatus() ProjectorStatus {
	s.projMu.Lock()
	defer s.projMu.Unlock()

	status := ProjectorStatus{}
	if s.projector != nil {
		status.Open = true
		status.Connected = s.projector.mirror.Connected()
	}
	return status
}

func (s *Service) emitProjectorStatus() {
	s.emit(EventProjectorStatus, s.GetProjectorStatus())
}
