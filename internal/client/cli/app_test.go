package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batyok32/shipyuusell-sub001/internal/client/config"
	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
	"github.com/batyok32/shipyuusell-sub001/internal/client/services"
	"github.com/batyok32/shipyuusell-sub001/internal/client/store"
	"github.com/batyok32/shipyuusell-sub001/internal/common"
)

// backend is a fake YuuSell API. Handlers are registered with Go 1.22
// method patterns relative to the API prefix.
type backend struct {
	mux *http.ServeMux
	srv *httptest.Server
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &backend{mux: mux, srv: srv}
}

func (b *backend) handle(pattern string, h http.HandlerFunc) {
	method, path, _ := strings.Cut(pattern, " ")
	b.mux.HandleFunc(method+" "+config.APIPrefix+path, h)
}

func reply(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func testConfig(b *backend, dbPath string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIURL = b.srv.URL
	cfg.DBPath = dbPath
	cfg.LogLevel = "error"
	return cfg
}

// newTestApp builds an App against b whose prompts read input.
func newTestApp(t *testing.T, b *backend, input string) (*App, *bytes.Buffer) {
	t.Helper()
	return newTestAppAt(t, b, filepath.Join(t.TempDir(), "yuusell.db"), input)
}

func newTestAppAt(t *testing.T, b *backend, dbPath, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a, err := NewApp(context.Background(), testConfig(b, dbPath), strings.NewReader(input), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, &out
}

// signIn installs tokens as if a login had happened.
func signIn(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.thunks.SetCredentials(context.Background(), "acc", "ref"))
}

func TestNewApp_CreatesDatabaseDirectory(t *testing.T) {
	b := newBackend(t)
	dbPath := filepath.Join(t.TempDir(), "state", "nested", "yuusell.db")

	a, _ := newTestAppAt(t, b, dbPath, "")
	require.NoError(t, a.Close())

	_, err := os.Stat(dbPath)
	require.NoError(t, err)
}

func TestNewApp_RestoresStoredSession(t *testing.T) {
	b := newBackend(t)
	dbPath := filepath.Join(t.TempDir(), "yuusell.db")

	first, _ := newTestAppAt(t, b, dbPath, "")
	signIn(t, first)
	require.NoError(t, first.Close())

	second, _ := newTestAppAt(t, b, dbPath, "")
	assert.True(t, second.isLoggedIn())
	st := second.store.State().Auth
	assert.Equal(t, "acc", st.AccessToken)
	assert.Equal(t, "ref", st.RefreshToken)
}

func TestNewApp_BadDatabasePath(t *testing.T) {
	b := newBackend(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := NewApp(context.Background(), testConfig(b, filepath.Join(blocker, "yuusell.db")), strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
}

func TestGetStatus(t *testing.T) {
	a, _ := newTestApp(t, newBackend(t), "")
	assert.Equal(t, "(guest)", a.getStatus())

	a.store.Dispatch(store.SetCredentials{Access: "acc", Refresh: "ref"})
	assert.Equal(t, "(signed in)", a.getStatus())

	a.store.Dispatch(store.Fulfilled{Op: store.OpLogin, Payload: store.Session{
		Access: "acc", Refresh: "ref", User: &models.User{Email: "ann@example.com"},
	}})
	assert.Equal(t, "(ann@example.com)", a.getStatus())
}

func TestRequireLogin(t *testing.T) {
	a, out := newTestApp(t, newBackend(t), "")

	require.ErrorIs(t, a.Shipments(context.Background()), errLoginRequired)
	assert.Contains(t, out.String(), "Please log in first")
}

func TestTokenRefresh_IsMirroredIntoState(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /logistics/shipments/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			reply(401, map[string]any{"detail": "token expired"})(w, r)
			return
		}
		reply(200, []map[string]any{{"id": 1, "shipment_number": "YS-1", "status": "in_transit"}})(w, r)
	})
	b.handle("POST /auth/token/refresh/", reply(200, map[string]any{"access": "fresh"}))

	a, out := newTestApp(t, b, "")
	signIn(t, a)

	require.NoError(t, a.Shipments(context.Background()))

	st := a.store.State().Auth
	assert.Equal(t, "fresh", st.AccessToken)
	assert.Equal(t, "ref", st.RefreshToken)
	assert.True(t, st.IsAuthenticated)
	assert.Contains(t, out.String(), "YS-1")
}

func TestSessionExpiry_LogsOutAndForgetsHandoff(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /logistics/shipments/", reply(401, map[string]any{"detail": "token expired"}))
	b.handle("POST /auth/token/refresh/", reply(401, map[string]any{"detail": "Token is blacklisted"}))

	a, out := newTestApp(t, b, "")
	signIn(t, a)
	a.handoff.Put(common.SelectedQuoteKey, models.Quote{Carrier: "DHL"})

	err := a.Shipments(context.Background())
	require.Error(t, err)

	assert.False(t, a.isLoggedIn())
	assert.Zero(t, a.handoff.Len())
	assert.Contains(t, out.String(), "Your session has expired")

	access, refresh, err := services.NewSessionService(a.db).Tokens(context.Background())
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestContact_ShowsFieldErrors(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /contact/", reply(400, map[string]any{"email": []string{"Enter a valid email address."}}))

	a, out := newTestApp(t, b, "Ann\nnot-an-email\nHello\nHi there\n\n")
	require.Error(t, a.Contact(context.Background()))
	assert.Contains(t, out.String(), "email: Enter a valid email address.")
}
