// Package cli implements the interactive terminal front end: a REPL that
// renders the session controller's view state and raises user intents
// (login, register, analyze, report navigation, logout) against it.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pixvera/imageproof/internal/client/config"
	"github.com/pixvera/imageproof/internal/client/controller"
	"github.com/pixvera/imageproof/internal/client/gateway"
	"github.com/pixvera/imageproof/internal/client/models"
	"github.com/pixvera/imageproof/internal/client/repositories/sessioncache"
	"github.com/pixvera/imageproof/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// sessionController is the controller surface the CLI needs. The real
// *controller.Controller satisfies it; tests provide a stub.
type sessionController interface {
	RestoreSession(ctx context.Context) error
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, email, password, confirmPassword string) error
	Logout(ctx context.Context) error
	SubmitImage(ctx context.Context, name string, content []byte) *models.AnalysisResult
	ShowReport()
	HideReport()
	ResetToUpload()
	Ping(ctx context.Context) error
	Session() *models.Session
	Result() *models.AnalysisResult
	FileName() string
	ViewMode() models.ViewMode
}

type App struct {
	config *config.Config
	ctrl   sessionController
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	mode Mode
}

// NewApp wires the session cache, the HTTP gateway and the controller,
// and restores any persisted session.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := sessioncache.Open(ctx, cfg.CacheDSN)
	if err != nil {
		return nil, fmt.Errorf("init session cache: %w", err)
	}

	client := gateway.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, log)
	ctrl := controller.New(client, sessioncache.NewSQLiteRepository(db), log)

	if err := ctrl.RestoreSession(ctx); err != nil {
		log.Warn(ctx, "could not restore session", "error", err)
	}

	return &App{
		config: cfg,
		ctrl:   ctrl,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.ctrl.Session() != nil
}

// status builds the prompt suffix: username, connectivity mode and the
// active view.
func (a *App) status() string {
	s := ""
	if sess := a.ctrl.Session(); sess != nil {
		s = sess.Username + " "
	}
	if a.mode != "" {
		s += string(a.mode) + " "
	}
	return fmt.Sprintf("(%s%s)", s, a.ctrl.ViewMode())
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.mode != mode {
		a.mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher periodically probes backend liveness and
// flips the online/offline indicator shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.ctrl.Ping(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
