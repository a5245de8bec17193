// Package controller implements the session controller: the single
// authority over authentication and analysis state. Views (CLI or web)
// only read projections of its state and raise intents through its
// methods; gateway errors never escape past it as raw errors; they are
// folded into state or returned as display-ready messages.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pixvera/imageproof/internal/client/gateway"
	"github.com/pixvera/imageproof/internal/client/models"
	"github.com/pixvera/imageproof/internal/client/repositories/sessioncache"
	"github.com/pixvera/imageproof/internal/common"
	"github.com/pixvera/imageproof/internal/filex"
	"github.com/pixvera/imageproof/internal/logging"
)

// User-facing messages. Fallbacks apply when the backend supplies none.
const (
	MsgMustLogIn        = "You must be logged in to analyze images."
	MsgSessionExpired   = "Session expired. Please log in again."
	MsgVerifyFailed     = "Verification failed"
	MsgVerifyTransport  = "Failed to verify evidence"
	MsgLoginFailed      = "Login failed"
	MsgRegisterFailed   = "Registration failed"
	MsgPasswordMismatch = "Passwords do not match."
)

// Controller owns the Session, the current AnalysisResult and the report
// flag. It is safe for concurrent use; it is the only writer of its state.
type Controller struct {
	client gateway.Client
	cache  sessioncache.Repository
	log    logging.Logger

	mu         sync.Mutex
	session    *models.Session
	result     *models.AnalysisResult
	fileName   string
	showReport bool

	// generation invalidates in-flight submissions: a result whose
	// submission started before the last state reset is discarded.
	generation uint64
}

func New(client gateway.Client, cache sessioncache.Repository, log logging.Logger) *Controller {
	return &Controller{
		client: client,
		cache:  cache,
		log:    log.With("component", "controller"),
	}
}

// RestoreSession rebuilds the session from the persisted cache. The
// session becomes present iff all three keys are cached; no network call
// is made. An expired cached token is restored anyway (the backend
// enforces expiry via 401) but logged.
func (c *Controller) RestoreSession(ctx context.Context) error {
	access, err := c.cache.Get(ctx, common.CacheKeyAccessToken)
	if err != nil {
		return err
	}
	refresh, err := c.cache.Get(ctx, common.CacheKeyRefreshToken)
	if err != nil {
		return err
	}
	username, err := c.cache.Get(ctx, common.CacheKeyUsername)
	if err != nil {
		return err
	}

	if access == "" || refresh == "" || username == "" {
		return nil
	}

	if exp, ok := tokenExpiry(access); ok && exp.Before(time.Now()) {
		c.log.Warn(ctx, "cached access token already expired", "username", username, "expired_at", exp)
	}

	c.mu.Lock()
	c.session = &models.Session{Username: username, AccessToken: access, RefreshToken: refresh}
	c.mu.Unlock()

	c.log.Info(ctx, "session restored", "username", username)
	return nil
}

// tokenExpiry peeks at the JWT exp claim without verifying the signature.
// The client holds no signing key; expiry here is informational only.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Login authenticates against the backend. On success the token record
// is persisted and the session set; on failure the session stays absent
// and the returned error carries a display-ready message.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	pair, err := c.client.Login(ctx, username, password)
	if err != nil {
		c.log.Warn(ctx, "login failed", "username", username, "error", err)
		return displayError(err, MsgLoginFailed)
	}

	if err := c.persistSession(ctx, username, pair); err != nil {
		// The backend accepted the credentials; a broken cache only costs
		// restore-on-restart.
		c.log.Warn(ctx, "failed to persist session", "error", err)
	}

	c.mu.Lock()
	c.session = &models.Session{
		Username:     username,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	c.mu.Unlock()

	c.log.Info(ctx, "login successful", "username", username)
	return nil
}

func (c *Controller) persistSession(ctx context.Context, username string, pair *models.TokenPair) error {
	if err := c.cache.Set(ctx, common.CacheKeyAccessToken, pair.AccessToken); err != nil {
		return err
	}
	if err := c.cache.Set(ctx, common.CacheKeyRefreshToken, pair.RefreshToken); err != nil {
		return err
	}
	return c.cache.Set(ctx, common.CacheKeyUsername, username)
}

// Register creates an account. Password confirmation is checked locally
// first and never reaches the network on mismatch. Success does not log
// the user in.
func (c *Controller) Register(ctx context.Context, username, email, password, confirmPassword string) error {
	if password != confirmPassword {
		return errors.New(MsgPasswordMismatch)
	}

	if err := c.client.Register(ctx, username, email, password); err != nil {
		c.log.Warn(ctx, "registration failed", "username", username, "error", err)
		return displayError(err, MsgRegisterFailed)
	}

	c.log.Info(ctx, "registration successful", "username", username)
	return nil
}

// Logout clears the persisted cache and all in-memory state. It is
// idempotent and safe to call with no active session. In-memory state is
// cleared even if the cache wipe fails.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.cache.Clear(ctx)

	c.mu.Lock()
	c.clearStateLocked()
	c.mu.Unlock()

	if err != nil {
		c.log.Error(ctx, "failed to clear session cache", "error", err)
		return err
	}
	return nil
}

// clearStateLocked resets session, result, file and report flag, and
// invalidates any in-flight submission. Caller must hold c.mu.
func (c *Controller) clearStateLocked() {
	c.session = nil
	c.result = nil
	c.fileName = ""
	c.showReport = false
	c.generation++
}

// SubmitImage runs the whole analysis flow for one file: pre-flight
// validation, synchronous transition to loading, the gateway call, and
// folding the outcome back into state. It returns the resulting
// AnalysisResult, which is also observable via Result().
func (c *Controller) SubmitImage(ctx context.Context, name string, content []byte) *models.AnalysisResult {
	c.mu.Lock()

	if c.result.Loading() {
		// A submission is already pending; the loading state gates re-entry.
		r := c.result
		c.mu.Unlock()
		return r
	}

	c.fileName = name
	c.showReport = false

	if c.session == nil {
		c.result = &models.AnalysisResult{Status: models.StatusError, Message: MsgMustLogIn}
		r := c.result
		c.mu.Unlock()
		return r
	}

	if err := filex.ValidateImage(name, content); err != nil {
		c.result = &models.AnalysisResult{Status: models.StatusError, Message: err.Error()}
		r := c.result
		c.mu.Unlock()
		c.log.Info(ctx, "image rejected locally", "file", name, "error", err)
		return r
	}

	c.generation++
	gen := c.generation
	token := c.session.AccessToken
	c.result = &models.AnalysisResult{Status: models.StatusLoading}
	c.mu.Unlock()

	c.log.Info(ctx, "submitting image", "file", name, "size", len(content))
	verdict, err := c.client.Analyze(ctx, name, content, token)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.log.Debug(ctx, "discarding stale analysis result", "file", name)
		return c.result
	}

	if err != nil {
		c.result = c.analyzeErrorLocked(ctx, err)
		return c.result
	}

	c.result = &models.AnalysisResult{Status: models.StatusComplete, Verdict: verdict}
	c.log.Info(ctx, "analysis complete", "file", name,
		"is_fake", verdict.IsFake, "confidence", verdict.Confidence, "hash", verdict.ImageHash)
	return c.result
}

// analyzeErrorLocked maps a gateway failure to an error result. A 401
// forces a full logout first. Caller must hold c.mu.
func (c *Controller) analyzeErrorLocked(ctx context.Context, err error) *models.AnalysisResult {
	if errors.Is(err, common.ErrUnauthorized) {
		c.log.Warn(ctx, "analysis rejected with 401, clearing session")
		if cerr := c.cache.Clear(ctx); cerr != nil {
			c.log.Error(ctx, "failed to clear session cache", "error", cerr)
		}
		c.clearStateLocked()
		return &models.AnalysisResult{Status: models.StatusError, Message: MsgSessionExpired}
	}

	var se *gateway.StatusError
	switch {
	case errors.As(err, &se):
		return &models.AnalysisResult{Status: models.StatusError, Message: se.Message(MsgVerifyFailed)}
	case errors.Is(err, gateway.ErrMalformedResponse):
		return &models.AnalysisResult{Status: models.StatusError, Message: MsgVerifyFailed}
	default:
		msg := err.Error()
		if msg == "" {
			msg = MsgVerifyTransport
		}
		return &models.AnalysisResult{Status: models.StatusError, Message: msg}
	}
}

// ShowReport raises the report flag. Session and result are untouched.
func (c *Controller) ShowReport() {
	c.mu.Lock()
	c.showReport = true
	c.mu.Unlock()
}

// HideReport lowers the report flag.
func (c *Controller) HideReport() {
	c.mu.Lock()
	c.showReport = false
	c.mu.Unlock()
}

// ResetToUpload clears file, result and report flag, keeping the session.
// Any in-flight submission result will be discarded when it lands.
func (c *Controller) ResetToUpload() {
	c.mu.Lock()
	c.result = nil
	c.fileName = ""
	c.showReport = false
	c.generation++
	c.mu.Unlock()
}

// Ping probes backend liveness through the gateway.
func (c *Controller) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}

// Session returns a copy of the current session, or nil when anonymous.
func (c *Controller) Session() *models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Result returns the current analysis result, or nil when no file has
// been submitted. The returned value is read-only by convention: the
// controller always replaces it wholesale, never mutates it in place.
func (c *Controller) Result() *models.AnalysisResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// FileName returns the name of the currently chosen file, if any.
func (c *Controller) FileName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fileName
}

// ViewMode derives the screen to render, in priority order: anonymous
// gate, upload, dashboard, report.
func (c *Controller) ViewMode() models.ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.session == nil:
		return models.ViewAnonymousGate
	case c.fileName == "":
		return models.ViewUpload
	case !c.showReport:
		return models.ViewDashboard
	default:
		return models.ViewReport
	}
}

// displayError converts a gateway error into one whose Error() is safe to
// show to the user, substituting fallback where the backend gave nothing
// usable.
func displayError(err error, fallback string) error {
	var se *gateway.StatusError
	switch {
	case errors.As(err, &se):
		return errors.New(se.Message(fallback))
	case errors.Is(err, gateway.ErrMalformedResponse):
		return errors.New(fallback)
	default:
		if err.Error() == "" {
			return errors.New(fallback)
		}
		return err
	}
}
