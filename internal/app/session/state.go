package session

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/go-shopfront/internal/observability/metrics"
)

const ginStateKey = "session_state"

// State is the per-request working copy of one session record, built once by
// the manager's middleware and passed to handlers through the gin context.
// It is never shared between requests. Handlers mutate the record through
// its methods only; the middleware saves the record once, at the end, if
// anything changed.
type State struct {
	manager *Manager
	record  *Record
	flashes []Flash
	dirty   bool
}

// drain moves the record's pending flash queue into the request's read-only
// view. Messages present now belong to this request's render, whether or not
// the handler renders them; they are gone from the stored record either way.
func (st *State) drain() {
	st.flashes = st.record.DrainFlash()
	if len(st.flashes) > 0 {
		st.dirty = true
		if app := metrics.Get(); app != nil {
			app.FlashDeliveredTotal.Add(context.Background(), int64(len(st.flashes)))
		}
	}
}

// Flashes returns the messages drained for this request, in enqueue order.
// The slice is the request's immutable view; callers must not modify it.
func (st *State) Flashes() []Flash {
	return st.flashes
}

// AddFlash queues a notice for the next request's drain. Valid at any point
// during handling, including after this request's own drain.
func (st *State) AddFlash(kind, message string) {
	st.record.AddFlash(kind, message)
	st.dirty = true
}

// IsLoggedIn reports whether the session is in the authenticated state.
func (st *State) IsLoggedIn() bool {
	return st.record.IsLoggedIn
}

// User returns the snapshot taken at login time, or nil when anonymous.
func (st *State) User() *UserSnapshot {
	return st.record.User
}

// LoginAt returns the time of the last successful login, zero when anonymous.
func (st *State) LoginAt() time.Time {
	return st.record.LoginAt
}

// Login transitions the session to the authenticated state.
func (st *State) Login(user UserSnapshot) {
	st.record.Authenticate(user)
	st.dirty = true
}

// Reset destroys the current record in the store and replaces it with a
// freshly minted anonymous one, cookie included. The replacement exists
// before Reset returns, so a farewell notice enqueued right after lands on
// the new record and survives to the next request's drain.
func (st *State) Reset(c *gin.Context) error {
	ctx := c.Request.Context()
	if err := st.manager.store.Delete(ctx, st.record.ID); err != nil {
		return err
	}

	rec, err := st.manager.mint(c)
	if err != nil {
		return err
	}

	st.record = rec
	st.flashes = nil
	st.dirty = false
	return nil
}

// FromGin returns the request's session state, or nil when the session
// middleware did not run.
func FromGin(c *gin.Context) *State {
	v, ok := c.Get(ginStateKey)
	if !ok {
		return nil
	}
	st, ok := v.(*State)
	if !ok {
		return nil
	}
	return st
}
