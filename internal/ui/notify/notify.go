package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
	Warning Kind = "warning"
)

const DefaultDuration = 3500 * time.Millisecond

type Toast struct {
	ID      int           `json:"id"`
	Message string        `json:"message"`
	Kind    Kind          `json:"kind"`
	Posted  time.Time     `json:"posted"`
	TTL     time.Duration `json:"-"`
}

// Notifier queues transient user-facing messages. Toasts stack and
// dismiss themselves after their duration; posting is fire-and-forget.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	active []Toast
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(message string, kind Kind, duration time.Duration) {
	if duration <= 0 {
		duration = DefaultDuration
	}

	n.mu.Lock()
	n.nextID++
	toast := Toast{
		ID:      n.nextID,
		Message: message,
		Kind:    kind,
		Posted:  time.Now(),
		TTL:     duration,
	}
	n.active = append(n.active, toast)
	n.mu.Unlock()

	time.AfterFunc(duration, func() {
		n.dismiss(toast.ID)
	})
}

func (n *Notifier) dismiss(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, t := range n.active {
		if t.ID == id {
			n.active = append(n.active[:i], n.active[i+1:]...)
			return
		}
	}
}

// Active returns a snapshot of the toasts currently displayed, oldest
// first.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Toast, len(n.active))
	copy(out, n.active)
	return out
}
