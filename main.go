package main

import (
	"embed"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
	"gopkg.in/natefinch/lumberjack.v2"

	"go.proclama.app/proclama/internal/app"
)

//go:embed all:frontend/dist
var assets embed.FS

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	setupLogging()
	slog.Info("starting app", "version", version, "commit", commit, "date", date)

	svc := app.New(version)

	wapp := application.New(application.Options{
		Name:        "Proclama",
		Description: "Worship projection controller",
		Services: []application.Service{
			application.NewService(svc),
		},
		Assets: application.AssetOptions{
			Handler: application.BundledAssetFileServer(assets),
		},
	})

	// Control window (the operator's panel).
	mainWindow := wapp.Window.NewWithOptions(application.WebviewWindowOptions{
		Title:           "Proclama",
		Width:           1280,
		Height:          800,
		URL:             "/",
		DevToolsEnabled: true,
	})

	// Closing the control window ends the session; projector windows
	// have no state of their own to preserve.
	mainWindow.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		svc.Shutdown()
	})

	svc.Init(wapp, mainWindow)

	// Tray menu for the common projection actions.
	systemTray := wapp.SystemTray.New()
	trayMenu := wapp.NewMenu()
	trayMenu.Add("Abrir Projetor").
		SetAccelerator("CmdOrCtrl+P").
		OnClick(func(ctx *application.Context) {
			svc.OpenProjector()
		})
	trayMenu.Add("Limpar Tela").
		SetAccelerator("CmdOrCtrl+L").
		OnClick(func(ctx *application.Context) {
			svc.ClearProjection()
		})
	trayMenu.Add("Blackout").
		SetAccelerator("CmdOrCtrl+B").
		OnClick(func(ctx *application.Context) {
			svc.ToggleBlackout()
		})
	trayMenu.AddSeparator()
	trayMenu.Add("Sair").
		SetAccelerator("CmdOrCtrl+Q").
		OnClick(func(ctx *application.Context) {
			svc.Shutdown()
			wapp.Quit()
		})
	systemTray.SetMenu(trayMenu)

	if err := wapp.Run(); err != nil {
		slog.Error("run app", "error", err)
	}
}

// setupLogging routes slog to stderr and a rotating file; a desktop app
// usually has no terminal attached, so the file is what support sees.
func setupLogging() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(configDir, "proclama", "logs", "proclama.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stderr, rotator), nil)
	slog.SetDefault(slog.New(handler))
}
