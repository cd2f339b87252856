package firebase

import (
	"context"
	"sync"
)

// AuthStateHub fans out sign-in/sign-out transitions to subscribers,
// mirroring the auth provider's reactive current-user stream. An empty
// uid means signed out.
type AuthStateHub struct {
	mu          sync.Mutex
	initialized bool
	ready       chan struct{}
	uid         string
	nextSubID   int
	subs        map[int]func(uid string)
}

func NewAuthStateHub() *AuthStateHub {
	return &AuthStateHub{
		ready: make(chan struct{}),
		subs:  make(map[int]func(uid string)),
	}
}

// SetSignedIn publishes a signed-in transition for the given uid.
func (h *AuthStateHub) SetSignedIn(uid string) {
	h.publish(uid)
}

// SetSignedOut publishes a signed-out transition.
func (h *AuthStateHub) SetSignedOut() {
	h.publish("")
}

func (h *AuthStateHub) publish(uid string) {
	h.mu.Lock()
	h.uid = uid
	if !h.initialized {
		h.initialized = true
		close(h.ready)
	}
	callbacks := make([]func(string), 0, len(h.subs))
	for _, fn := range h.subs {
		callbacks = append(callbacks, fn)
	}
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn(uid)
	}
}

// OnAuthStateChanged registers a callback invoked on every transition.
// If the hub already holds a resolved state, the callback fires once
// immediately with it. Returns an unsubscribe function.
func (h *AuthStateHub) OnAuthStateChanged(fn func(uid string)) func() {
	h.mu.Lock()
	id := h.nextSubID
	h.nextSubID++
	h.subs[id] = fn
	replay := h.initialized
	uid := h.uid
	h.mu.Unlock()

	if replay {
		fn(uid)
	}

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// CurrentUser resolves the signed-in uid, or empty when signed out. It
// waits until the provider state is confirmed initialized rather than
// racing a default to empty.
func (h *AuthStateHub) CurrentUser(ctx context.Context) (string, error) {
	select {
	case <-h.ready:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.uid, nil
}
