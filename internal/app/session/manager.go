package session

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-shopfront/internal/observability/metrics"
)

// renewThreshold throttles sliding-expiry writes: a load only counts as
// activity worth persisting once per threshold window.
const renewThreshold = time.Minute

type Config struct {
	Secret        string
	TTL           time.Duration
	SecureCookies bool
}

// Manager maps each inbound request to exactly one session record: one load
// up front, one save at the end if the record was mutated. The store is the
// only shared mutable resource; within one session id the last completed
// save wins, whole-record. Two overlapping requests for the same id (double
// submit, back-button replay) may therefore drop one side's flash enqueue.
// That race is accepted; fixing it needs per-field atomic ops in the store.
type Manager struct {
	store  Store
	cfg    Config
	logger *zap.Logger
}

func NewManager(store Store, cfg Config, logger *zap.Logger) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session: signing secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session: TTL must be positive")
	}
	return &Manager{store: store, cfg: cfg, logger: logger}, nil
}

// Middleware resolves the request's session record, drains the flash queue
// into the per-request view, and persists mutations after the handler runs.
// The handler's response is buffered until the record is committed: a save
// failure discards the buffered response and the client gets a server error
// instead of a success it cannot trust. Store unavailability at resolve time
// aborts the same way.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := m.resolve(c)
		if err != nil {
			m.logger.Error("Session resolution failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(ginStateKey, st)

		bw := &bufferedWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()
		c.Writer = bw.ResponseWriter

		if st.dirty {
			if err := m.store.Put(c.Request.Context(), st.record); err != nil {
				m.logger.Error("Failed to save session record",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
				// The buffered response promised state that was never
				// persisted. Drop it, redirect headers included.
				c.Writer.Header().Del("Location")
				c.Writer.Header().Del("Content-Type")
				c.Writer.WriteHeader(http.StatusInternalServerError)
				return
			}
		}

		if err := bw.release(); err != nil {
			m.logger.Warn("Failed to write buffered response",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
	}
}

// bufferedWriter holds the handler's response back until the session record
// is committed. Headers accumulate in the shared header map as usual; only
// the status line and body are deferred.
type bufferedWriter struct {
	gin.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 {
		w.status = code
	}
}

// WriteHeaderNow is a no-op; the status goes out on release.
func (w *bufferedWriter) WriteHeaderNow() {}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Written() bool {
	return w.status != 0 || w.body.Len() > 0
}

func (w *bufferedWriter) Status() int {
	if w.status != 0 {
		return w.status
	}
	return http.StatusOK
}

func (w *bufferedWriter) Size() int {
	return w.body.Len()
}

// release writes the deferred status and body through to the real writer.
func (w *bufferedWriter) release() error {
	if w.status != 0 {
		w.ResponseWriter.WriteHeader(w.status)
	}
	if w.body.Len() > 0 {
		if _, err := w.ResponseWriter.Write(w.body.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// resolve loads the record referenced by a valid cookie, or mints a fresh
// anonymous one. Tampered or unknown tokens are treated exactly like a
// missing cookie.
func (m *Manager) resolve(c *gin.Context) (*State, error) {
	if value, err := c.Cookie(CookieName); err == nil {
		if id, err := verifyToken(value, []byte(m.cfg.Secret)); err == nil {
			rec, err := m.store.Get(c.Request.Context(), id)
			switch {
			case err == nil:
				st := &State{manager: m, record: rec}
				st.drain()
				if time.Since(rec.LastSeenAt) >= renewThreshold {
					rec.Touch(m.cfg.TTL)
					st.dirty = true
				}
				return st, nil
			case errors.Is(err, ErrNotFound):
				// Expired or unknown id: fall through and mint.
			default:
				return nil, err
			}
		}
	}

	rec, err := m.mint(c)
	if err != nil {
		return nil, err
	}
	return &State{manager: m, record: rec}, nil
}

// mint creates an anonymous record and writes it through immediately, so a
// concurrent second request carrying the same not-yet-returned cookie finds
// it. Mint-on-miss stays best effort: a true race can still produce two
// session ids, and the client simply keeps the one set last.
func (m *Manager) mint(c *gin.Context) (*Record, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("minting session id: %w", err)
	}

	rec := NewRecord(id, m.cfg.TTL)
	if err := m.store.Put(c.Request.Context(), rec); err != nil {
		return nil, err
	}
	m.setCookie(c, id)

	if app := metrics.Get(); app != nil {
		app.SessionsMintedTotal.Add(c.Request.Context(), 1)
	}
	return rec, nil
}

func (m *Manager) setCookie(c *gin.Context, id string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    signToken(id, []byte(m.cfg.Secret)),
		Path:     "/",
		MaxAge:   int(m.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
