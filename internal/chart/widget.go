package chart

import "sync"

// Widget holds at most one mounted embed and remounts it only when the
// chart's identity changes.
type Widget struct {
	embedder Embedder

	mu      sync.Mutex
	current *Embed
}

// NewWidget creates an unmounted widget.
func NewWidget(e Embedder) *Widget {
	if e == nil {
		e = TradingView{}
	}
	return &Widget{embedder: e}
}

// Update mounts p, replacing the current embed if its identity differs.
// The old embed is always unmounted before the new one is mounted.
func (w *Widget) Update(p Params) (*Embed, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current != nil && w.current.Identity == p.Identity() {
		return w.current, nil
	}
	if w.current != nil {
		w.embedder.Unmount(w.current)
		w.current = nil
	}

	e, err := w.embedder.Mount(p)
	if err != nil {
		return nil, err
	}
	w.current = e
	return e, nil
}

// Current returns the mounted embed, or nil.
func (w *Widget) Current() *Embed {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Close unmounts the current embed.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current != nil {
		w.embedder.Unmount(w.current)
		w.current = nil
	}
}
