package wordbook

import (
	"context"
	"sync"
)

// Registry keeps one Loader per user so repeated refreshes see the loading
// flags of earlier ones.
type Registry struct {
	opts Options

	mu      sync.Mutex
	loaders map[string]*Loader
}

func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts, loaders: map[string]*Loader{}}
}

func (r *Registry) loader(userID string) *Loader {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loaders[userID]
	if !ok {
		l = NewLoader(r.opts)
		r.loaders[userID] = l
	}
	return l
}

// Refresh refreshes the user's wordbook and returns its state right after
// the detail fetches were queued.
func (r *Registry) Refresh(ctx context.Context, userID string) (State, error) {
	l := r.loader(userID)
	if err := l.Refresh(ctx, userID); err != nil {
		return State{}, err
	}
	return l.State(), nil
}

// Forget drops the user's loader.
func (r *Registry) Forget(userID string) {
	r.mu.Lock()
	l, ok := r.loaders[userID]
	delete(r.loaders, userID)
	r.mu.Unlock()
	if ok {
		l.Close()
	}
}

// Close stops every loader's watchdogs.
func (r *Registry) Close() {
	r.mu.Lock()
	loaders := r.loaders
	r.loaders = map[string]*Loader{}
	r.mu.Unlock()
	for _, l := range loaders {
		l.Close()
	}
}
