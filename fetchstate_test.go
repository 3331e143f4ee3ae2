package fetchstate

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

type testCase struct {
	name  string
	opts  []Option
	bound bool // whether the cache evicts at capacity
}

func cacheCases(capacity int) []testCase {
	return []testCase{
		{name: "map cache", opts: []Option{WithMapBackend()}},
		{name: "map cache with capacity", opts: []Option{WithMapBackend(), WithCapacity(capacity)}},
		{name: "LRU cache", opts: []Option{WithLRUBackend(capacity)}, bound: true},
	}
}

type user struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

var errTimeout = errors.New("timeout")

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// staticGetter returns body on every call.
func staticGetter(body []byte) GetterFunc {
	return func(ctx context.Context, locator string) ([]byte, error) {
		return body, nil
	}
}

// failingGetter returns err on every call.
func failingGetter(err error) GetterFunc {
	return func(ctx context.Context, locator string) ([]byte, error) {
		return nil, err
	}
}

// scriptedGetter replies with responses in order, repeating the last one.
type scriptedGetter struct {
	mu        sync.Mutex
	responses []scripted
	calls     int
}

type scripted struct {
	body []byte
	err  error
}

func (g *scriptedGetter) Get(ctx context.Context, locator string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r := g.responses[min(g.calls, len(g.responses)-1)]
	g.calls++
	return r.body, r.err
}

func (g *scriptedGetter) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// stateRecorder records every state passed to a state hook.
type stateRecorder struct {
	mu     sync.Mutex
	states []State
}

func (r *stateRecorder) hook(st State) {
	r.mu.Lock()
	r.states = append(r.states, st)
	r.mu.Unlock()
}

func (r *stateRecorder) busy() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bool, len(r.states))
	for i, st := range r.states {
		out[i] = st.Busy
	}
	return out
}

func (r *stateRecorder) reset() {
	r.mu.Lock()
	r.states = nil
	r.mu.Unlock()
}
