package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pixvera/imageproof/internal/common"
	"github.com/pixvera/imageproof/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/api/", 5*time.Second, testLogger())
}

func TestLogin_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/token/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		body, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"username":"alice","password":"pw1"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access":"acc-1","refresh":"ref-1"}`))
	})

	pair, err := c.Login(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, "acc-1", pair.AccessToken)
	require.Equal(t, "ref-1", pair.RefreshToken)
}

func TestLogin_BackendDetailSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"No active account found"}`))
	})

	_, err := c.Login(context.Background(), "alice", "bad")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusUnauthorized, se.Code)
	require.Equal(t, "No active account found", se.Detail)
}

func TestLogin_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.Login(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestRegister_UsesMessageField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/register/", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"username already taken"}`))
	})

	err := c.Register(context.Background(), "bob", "b@x.com", "pw")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "username already taken", se.Detail)
}

func TestRegister_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	require.NoError(t, c.Register(context.Background(), "bob", "b@x.com", "pw"))
}

func TestAnalyze_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analyze/", r.URL.Path)
		require.Equal(t, "Bearer acc-1", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(32<<20))
		f, fh, err := r.FormFile(common.ImageFormField)
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "photo.jpg", fh.Filename)
		data, _ := io.ReadAll(f)
		require.Equal(t, []byte("img-bytes"), data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"is_authentic": false,
			"confidence": 0.92,
			"metadata_status": "Modified",
			"metadata_details": {"Software": "Photoshop"},
			"image_hash": "h1"
		}`))
	})

	v, err := c.Analyze(context.Background(), "photo.jpg", []byte("img-bytes"), "acc-1")
	require.NoError(t, err)
	require.True(t, v.IsFake)
	require.InDelta(t, 0.92, v.Confidence, 1e-9)
	require.Equal(t, "Modified", v.MetadataStatus)
	require.Equal(t, map[string]string{"Software": "Photoshop"}, v.MetadataDetails)
	require.Equal(t, []string{"Modified"}, v.Inconsistencies)
	require.Equal(t, "h1", v.ImageHash)
}

func TestAnalyze_LabelAndHashAliases(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"label":"Fake","confidence":1.7,"blockchainHash":"bh"}`))
	})

	v, err := c.Analyze(context.Background(), "p.png", []byte("x"), "t")
	require.NoError(t, err)
	require.True(t, v.IsFake)
	require.Equal(t, 1.0, v.Confidence, "confidence must clamp into [0,1]")
	require.Equal(t, "bh", v.ImageHash)
	require.Empty(t, v.Inconsistencies)
	require.NotNil(t, v.MetadataDetails)
}

func TestAnalyze_CleanMetadataHasNoInconsistencies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"is_authentic":true,"confidence":0.99,"metadata_status":"Clean","image_hash":"h2"}`))
	})

	v, err := c.Analyze(context.Background(), "p.png", []byte("x"), "t")
	require.NoError(t, err)
	require.False(t, v.IsFake)
	require.Empty(t, v.Inconsistencies)
}

func TestAnalyze_UnauthorizedSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Analyze(context.Background(), "p.png", []byte("x"), "stale")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAnalyze_OtherStatusCarriesDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail":"model unavailable"}`))
	})

	_, err := c.Analyze(context.Background(), "p.png", []byte("x"), "t")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "model unavailable", se.Detail)
	require.Equal(t, "model unavailable", se.Message("fallback"))
}

func TestStatusError_MessageFallback(t *testing.T) {
	se := &StatusError{Code: 500}
	require.Equal(t, "fallback", se.Message("fallback"))
	require.Contains(t, se.Error(), "500")
}

func TestNetworkFailure_MapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	c := NewHTTPClient(srv.URL, time.Second, testLogger())

	_, err := c.Login(context.Background(), "a", "b")
	require.ErrorIs(t, err, common.ErrUnavailable)

	require.ErrorIs(t, c.Ping(context.Background()), common.ErrUnavailable)
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health/", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, c.Ping(context.Background()))

	bad := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	require.ErrorIs(t, bad.Ping(context.Background()), common.ErrUnavailable)
}
