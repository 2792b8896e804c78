package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-at-least-long-enough"

func newTestManager(t *testing.T, store Store) *Manager {
	t.Helper()
	m, err := NewManager(store, Config{Secret: testSecret, TTL: time.Hour}, zap.NewNop())
	require.NoError(t, err)
	return m
}

// newTestRouter builds a minimal app around the middleware: a page that
// reports drained flashes, a form that enqueues one, and login/logout.
func newTestRouter(t *testing.T, store Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := newTestManager(t, store)

	r := gin.New()
	r.Use(m.Middleware())

	r.GET("/page", func(c *gin.Context) {
		st := FromGin(c)
		var lines []string
		for _, f := range st.Flashes() {
			lines = append(lines, f.Type+":"+f.Message)
		}
		c.String(http.StatusOK, strings.Join(lines, "\n"))
	})
	r.POST("/enqueue", func(c *gin.Context) {
		FromGin(c).AddFlash(FlashError, c.PostForm("message"))
		c.Redirect(http.StatusFound, "/page")
	})
	r.POST("/login", func(c *gin.Context) {
		FromGin(c).Login(UserSnapshot{ID: "u1", Email: "alice@example.com"})
		c.Redirect(http.StatusFound, "/page")
	})
	r.POST("/logout", func(c *gin.Context) {
		st := FromGin(c)
		if err := st.Reset(c); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		st.AddFlash(FlashSuccess, "Goodbye")
		c.Redirect(http.StatusFound, "/page")
	})
	return r
}

func doRequest(r *gin.Engine, method, path string, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestMiddlewareMintsSessionOnFirstRequest(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(t, store)

	w := doRequest(r, http.MethodGet, "/page", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, int(time.Hour.Seconds()), ck.MaxAge)
	assert.False(t, ck.Secure)

	// Write-through: the record exists before the cookie ever returns.
	assert.Equal(t, 1, store.Len())

	id, err := verifyToken(ck.Value, []byte(testSecret))
	require.NoError(t, err)
	_, err = store.Get(context.Background(), id)
	assert.NoError(t, err)
}

func TestMiddlewareReusesExistingSession(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(t, store)

	first := doRequest(r, http.MethodGet, "/page", nil, nil)
	ck := sessionCookie(t, first)

	second := doRequest(r, http.MethodGet, "/page", ck, nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, store.Len())
	for _, c := range second.Result().Cookies() {
		assert.NotEqual(t, CookieName, c.Name, "no new cookie should be minted")
	}
}

func TestTamperedCookieTreatedAsMissing(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(t, store)

	first := doRequest(r, http.MethodGet, "/page", nil, nil)
	ck := sessionCookie(t, first)

	forged := &http.Cookie{Name: CookieName, Value: ck.Value + "x"}
	second := doRequest(r, http.MethodGet, "/page", forged, nil)
	require.Equal(t, http.StatusOK, second.Code)

	fresh := sessionCookie(t, second)
	assert.NotEqual(t, ck.Value, fresh.Value)
	assert.Equal(t, 2, store.Len())
}

func TestUnknownSessionIDMintsReplacement(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(t, store)

	// Validly signed token for an id the store has never seen.
	ghost := &http.Cookie{Name: CookieName, Value: signToken("ghost-id", []byte(testSecret))}
	w := doRequest(r, http.MethodGet, "/page", ghost, nil)
	require.Equal(t, http.StatusOK, w.Code)

	fresh := sessionCookie(t, w)
	id, err := verifyToken(fresh.Value, []byte(testSecret))
	require.NoError(t, err)
	assert.NotEqual(t, "ghost-id", id)
}

func TestFlashDeliveredExactlyOnce(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(t, store)

	first := doRequest(r, http.MethodGet, "/page", nil, nil)
	ck := sessionCookie(t, first)

	enqueue := doRequest(r, http.MethodPost, "/enqueue", ck, url.Values{"message": {"Invalid email or password"}})
	require.Equal(t, http.StatusFound, enqueue.Code)

	shown := doRequest(r, http.MethodGet, "/page", ck, nil)
	assert.Equal(t, "error:Invalid email or password", shown.Body.String())

	again := doRequest(r, http.MethodGet, "/page", ck, nil)
	assert.Empty(t, again.Body.String())
}

func TestFlashOrderPreservedAcrossRequests(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRouter(t, store)

	first := doRequest(r, http.MethodGet, "/page", nil, nil)
	ck := sessionCookie(t, first)

	doRequest(r, http.MethodPost, "/enqueue", ck, url.Values{"message": {"one"}})
	doRequest(r, http.MethodGet, "/page", ck, nil) // drains "one"

	doRequest(r, http.MethodPost, "/enqueue", ck, url.Values{"message": {"two"}})
	doRequest(r, http.MethodPost, "/enqueue", ck, url.Values{"message": {"three"}})

	shown := doRequest(r, http.MethodGet, "/page", ck, nil)
	assert.Equal(t, "error:two\nerror:three", shown.Body.String())
}

func TestSlidingRenewalThrottledByActivity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	r := newTestRouter(t, store)

	first := doRequest(r, http.MethodGet, "/page", nil, nil)
	ck := sessionCookie(t, first)
	id, err := verifyToken(ck.Value, []byte(testSecret))
	require.NoError(t, err)

	// Fresh activity: a follow-up load must not rewrite the record.
	before, err := store.Get(ctx, id)
	require.NoError(t, err)
	doRequest(r, http.MethodGet, "/page", ck, nil)
	after, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.ExpiresAt.Equal(before.ExpiresAt))

	// Stale activity: the window slides forward.
	stale, err := store.Get(ctx, id)
	require.NoError(t, err)
	stale.LastSeenAt = time.Now().Add(-2 * renewThreshold)
	stale.ExpiresAt = time.Now().Add(30 * time.Minute)
	require.NoError(t, store.Put(ctx, stale))

	doRequest(r, http.MethodGet, "/page", ck, nil)
	renewed, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, renewed.ExpiresAt.After(stale.ExpiresAt))
	assert.WithinDuration(t, time.Now().Add(time.Hour), renewed.ExpiresAt, 2*time.Second)
}

func TestExpiredSessionReplacedAndStateDropped(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	r := newTestRouter(t, store)

	first := doRequest(r, http.MethodGet, "/page", nil, nil)
	ck := sessionCookie(t, first)
	id, err := verifyToken(ck.Value, []byte(testSecret))
	require.NoError(t, err)

	doRequest(r, http.MethodPost, "/login", ck, nil)

	// Force the record past its TTL.
	rec, err := store.Get(ctx, id)
	require.NoError(t, err)
	rec.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Put(ctx, rec))

	w := doRequest(r, http.MethodGet, "/page", ck, nil)
	require.Equal(t, http.StatusOK, w.Code)

	fresh := sessionCookie(t, w)
	freshID, err := verifyToken(fresh.Value, []byte(testSecret))
	require.NoError(t, err)
	assert.NotEqual(t, id, freshID)

	replacement, err := store.Get(ctx, freshID)
	require.NoError(t, err)
	assert.False(t, replacement.IsLoggedIn)
}

func TestResetIssuesNewSessionAndFarewellSurvives(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	r := newTestRouter(t, store)

	first := doRequest(r, http.MethodGet, "/page", nil, nil)
	ck := sessionCookie(t, first)
	oldID, err := verifyToken(ck.Value, []byte(testSecret))
	require.NoError(t, err)

	doRequest(r, http.MethodPost, "/login", ck, nil)

	out := doRequest(r, http.MethodPost, "/logout", ck, nil)
	require.Equal(t, http.StatusFound, out.Code)

	fresh := sessionCookie(t, out)
	freshID, err := verifyToken(fresh.Value, []byte(testSecret))
	require.NoError(t, err)
	assert.NotEqual(t, oldID, freshID)

	// The destroyed record is gone for good.
	_, err = store.Get(ctx, oldID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The farewell enqueued after the reset lands on the replacement.
	shown := doRequest(r, http.MethodGet, "/page", fresh, nil)
	assert.Equal(t, "success:Goodbye", shown.Body.String())

	anon, err := store.Get(ctx, freshID)
	require.NoError(t, err)
	assert.False(t, anon.IsLoggedIn)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*Record, error) {
	return nil, errors.New("store down")
}

func (failingStore) Put(context.Context, *Record) error {
	return errors.New("store down")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("store down")
}

func (failingStore) EnsureSchema(context.Context) error { return nil }

func TestStoreFailureAbortsRequest(t *testing.T) {
	r := newTestRouter(t, failingStore{})
	w := doRequest(r, http.MethodGet, "/page", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// brokenPutStore resolves reads normally but can be switched to fail every
// save, simulating the store going away mid-request.
type brokenPutStore struct {
	*MemoryStore
	failPuts bool
}

func (s *brokenPutStore) Put(ctx context.Context, rec *Record) error {
	if s.failPuts {
		return errors.New("store down")
	}
	return s.MemoryStore.Put(ctx, rec)
}

func TestSaveFailureDiscardsSuccessResponse(t *testing.T) {
	ctx := context.Background()
	store := &brokenPutStore{MemoryStore: NewMemoryStore()}
	r := newTestRouter(t, store)

	first := doRequest(r, http.MethodGet, "/page", nil, nil)
	ck := sessionCookie(t, first)
	id, err := verifyToken(ck.Value, []byte(testSecret))
	require.NoError(t, err)

	// The login handler writes its redirect, but the end-of-request save
	// fails. The client must see a server error, not the redirect.
	store.failPuts = true
	w := doRequest(r, http.MethodPost, "/login", ck, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Empty(t, w.Body.String())

	// The stored record kept its previous shape: still anonymous.
	store.failPuts = false
	rec, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, rec.IsLoggedIn)
}

func TestSaveFailureDropsFlashEnqueue(t *testing.T) {
	store := &brokenPutStore{MemoryStore: NewMemoryStore()}
	r := newTestRouter(t, store)

	first := doRequest(r, http.MethodGet, "/page", nil, nil)
	ck := sessionCookie(t, first)

	store.failPuts = true
	w := doRequest(r, http.MethodPost, "/enqueue", ck, url.Values{"message": {"lost"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Nothing was persisted, so the next load has nothing to drain.
	store.failPuts = false
	shown := doRequest(r, http.MethodGet, "/page", ck, nil)
	assert.Empty(t, shown.Body.String())
}

func TestCleanRequestPassesResponseThrough(t *testing.T) {
	// A request that never dirties the record must not be affected by the
	// response buffering.
	store := NewMemoryStore()
	r := newTestRouter(t, store)

	first := doRequest(r, http.MethodGet, "/page", nil, nil)
	ck := sessionCookie(t, first)

	w := doRequest(r, http.MethodGet, "/page", ck, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestNewManagerValidatesConfig(t *testing.T) {
	_, err := NewManager(NewMemoryStore(), Config{Secret: "", TTL: time.Hour}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewManager(NewMemoryStore(), Config{Secret: "s", TTL: 0}, zap.NewNop())
	assert.Error(t, err)
}
