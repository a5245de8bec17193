package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixvera/imageproof/internal/client/models"
	"github.com/pixvera/imageproof/internal/common"
	"github.com/pixvera/imageproof/internal/logging"
)

// ErrMalformedResponse marks a 2xx response whose body could not be
// decoded. Callers should degrade to a generic user-facing message.
var ErrMalformedResponse = errors.New("malformed backend response")

// HTTPClient implements Client over the backend's HTTP contract:
// JSON for auth calls, multipart for the analyze upload.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base endpoint, e.g.
// "http://127.0.0.1:8000/api". The timeout applies per request.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "gateway"),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// errorBody covers both backend error shapes: auth endpoints use
// {detail}, the register endpoint may use {message}.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (e *errorBody) text() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

// verdictPayload is the canonical analyze response. Older backend
// variants report label instead of is_authentic and blockchainHash
// instead of image_hash; both aliases are accepted.
type verdictPayload struct {
	IsAuthentic     *bool             `json:"is_authentic"`
	Label           string            `json:"label"`
	Confidence      float64           `json:"confidence"`
	MetadataStatus  string            `json:"metadata_status"`
	MetadataDetails map[string]string `json:"metadata_details"`
	ImageHash       string            `json:"image_hash"`
	BlockchainHash  string            `json:"blockchainHash"`
}

func (p *verdictPayload) toVerdict() *models.Verdict {
	isFake := p.Label == "Fake"
	if p.IsAuthentic != nil {
		isFake = !*p.IsAuthentic
	}

	confidence := p.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	hash := p.ImageHash
	if hash == "" {
		hash = p.BlockchainHash
	}

	details := p.MetadataDetails
	if details == nil {
		details = map[string]string{}
	}

	var inconsistencies []string
	if p.MetadataStatus != "" && p.MetadataStatus != "Clean" {
		inconsistencies = []string{p.MetadataStatus}
	}

	return &models.Verdict{
		IsFake:          isFake,
		Confidence:      confidence,
		MetadataStatus:  p.MetadataStatus,
		MetadataDetails: details,
		Inconsistencies: inconsistencies,
		ImageHash:       hash,
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	return resp, nil
}

// statusError drains the body for a backend message and wraps it.
func statusError(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb)
	return &StatusError{Code: resp.StatusCode, Detail: eb.text()}
}

// Login exchanges credentials for a token pair via POST {base}/token/.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	payload, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/token/", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if lr.Access == "" {
		return nil, fmt.Errorf("%w: missing access token", ErrMalformedResponse)
	}

	return &models.TokenPair{AccessToken: lr.Access, RefreshToken: lr.Refresh}, nil
}

// Register creates an account via POST {base}/register/. The success body
// is ignored beyond the status check; no session is produced.
func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	payload, err := json.Marshal(registerRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/register/", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Analyze submits image bytes via POST {base}/analyze/ as multipart form
// content with a bearer token. A 401 maps to common.ErrUnauthorized so
// the controller can force a logout.
func (c *HTTPClient) Analyze(ctx context.Context, filename string, content []byte, accessToken string) (*models.Verdict, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile(common.ImageFormField, filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/analyze/", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, common.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}

	var vp verdictPayload
	if err := json.NewDecoder(resp.Body).Decode(&vp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return vp.toVerdict(), nil
}

// Ping probes backend liveness via GET {base}/health/.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health/", nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return common.ErrUnavailable
	}
	return nil
}
