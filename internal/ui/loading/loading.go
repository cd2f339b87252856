package loading

import "sync"

// Indicator is a reference-counted loading overlay. Nested or
// concurrent loading sections each acquire it; the overlay stays
// visible until every section has released.
type Indicator struct {
	mu    sync.Mutex
	count int
}

func NewIndicator() *Indicator {
	return &Indicator{}
}

func (i *Indicator) Acquire() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.count++
}

func (i *Indicator) Release() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.count > 0 {
		i.count--
	}
}

func (i *Indicator) Visible() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.count > 0
}
