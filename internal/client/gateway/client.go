// Package gateway contains the stateless façades over the remote
// image-forensics backend: authentication (login/register) and analysis
// (image submission). All calls are fire-once; retries are the caller's
// decision and none are performed here.
package gateway

import (
	"context"

	"github.com/pixvera/imageproof/internal/client/models"
)

// Client is the remote API surface used by the session controller.
//
// Contract:
//   - Login: exchange credentials for a token pair.
//   - Register: create an account; no session is produced.
//   - Analyze: submit image bytes with a bearer token, receive a verdict.
//   - Ping: check backend liveness.
//
// All methods honor context cancellation and the configured request timeout.
type Client interface {
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	Register(ctx context.Context, username, email, password string) error
	Analyze(ctx context.Context, filename string, content []byte, accessToken string) (*models.Verdict, error)
	Ping(ctx context.Context) error
}
