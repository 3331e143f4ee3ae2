package users

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoki317/fetchstate"
	"github.com/motoki317/fetchstate/transport"
)

var (
	ann = User{ID: 1, Name: "Ann"}
	bob = User{ID: 2, Name: "Bob"}
)

// scriptedGetter replies with responses in order, repeating the last one.
type scriptedGetter struct {
	mu        sync.Mutex
	responses []func() ([]byte, error)
	locators  []string
}

func (g *scriptedGetter) Get(_ context.Context, locator string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r := g.responses[min(len(g.locators), len(g.responses)-1)]
	g.locators = append(g.locators, locator)
	return r()
}

func body(s string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(s), nil }
}

func fail(err error) func() ([]byte, error) {
	return func() ([]byte, error) { return nil, err }
}

func newTestList(t *testing.T, g fetchstate.Getter, options ...ListOption) (*List, *bytes.Buffer) {
	t.Helper()

	f, err := NewFetcher(g, fetchstate.WithValidation())
	require.NoError(t, err)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewList(f, append([]ListOption{WithLogger(logger)}, options...)...), &buf
}

func TestNewList(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t, &scriptedGetter{responses: []func() ([]byte, error){body(`[]`)}})
	assert.Equal(t, DefaultLocator, l.Locator())
	assert.NotNil(t, l.Users())
	assert.Empty(t, l.Users())
	assert.Equal(t, fetchstate.State{}, l.State())
}

func TestList_Init(t *testing.T) {
	t.Parallel()

	t.Run("A: success", func(t *testing.T) {
		t.Parallel()

		g := &scriptedGetter{responses: []func() ([]byte, error){body(`[{"id":1,"name":"Ann"}]`)}}
		l, logs := newTestList(t, g)

		l.Init(context.Background())
		assert.Equal(t, []User{ann}, l.Users())
		assert.Equal(t, fetchstate.State{Busy: false, LastError: ""}, l.State())
		assert.Equal(t, []string{DefaultLocator}, g.locators)
		assert.Empty(t, logs.String())
	})

	t.Run("B: network error", func(t *testing.T) {
		t.Parallel()

		g := &scriptedGetter{responses: []func() ([]byte, error){fail(errors.New("timeout"))}}
		l, logs := newTestList(t, g)

		l.Init(context.Background())
		assert.Empty(t, l.Users())
		assert.Equal(t, fetchstate.State{Busy: false, LastError: "Failed to load data. Please try again."}, l.State())
		assert.Contains(t, logs.String(), "level=ERROR")
		assert.Contains(t, logs.String(), "timeout")
		assert.Contains(t, logs.String(), DefaultLocator)
	})

	t.Run("fetches once", func(t *testing.T) {
		t.Parallel()

		g := &scriptedGetter{responses: []func() ([]byte, error){
			body(`[{"id":1,"name":"Ann"}]`),
			body(`[{"id":2,"name":"Bob"}]`),
		}}
		l, _ := newTestList(t, g)

		l.Init(context.Background())
		l.Init(context.Background())
		assert.Len(t, g.locators, 1)
		assert.Equal(t, []User{ann}, l.Users())
	})

	t.Run("custom locator", func(t *testing.T) {
		t.Parallel()

		g := &scriptedGetter{responses: []func() ([]byte, error){body(`[]`)}}
		l, _ := newTestList(t, g, WithLocator("http://localhost/users"))

		l.Init(context.Background())
		assert.Equal(t, []string{"http://localhost/users"}, g.locators)
	})

	t.Run("invalid records", func(t *testing.T) {
		t.Parallel()

		g := &scriptedGetter{responses: []func() ([]byte, error){body(`[{"id":1,"name":"Ann","email":"not-an-email"}]`)}}
		l, logs := newTestList(t, g)

		l.Init(context.Background())
		assert.Empty(t, l.Users())
		assert.Equal(t, fetchstate.DefaultErrorMessage, l.State().LastError)
		assert.Contains(t, logs.String(), "Email")
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		g := &scriptedGetter{responses: []func() ([]byte, error){func() ([]byte, error) {
			cancel()
			return nil, context.Canceled
		}}}
		l, logs := newTestList(t, g)

		l.Init(ctx)
		assert.Empty(t, l.Users())
		assert.Equal(t, fetchstate.State{}, l.State())
		assert.NotContains(t, logs.String(), "level=ERROR")
		assert.Contains(t, logs.String(), "cancelled")
	})
}

func TestList_Reload(t *testing.T) {
	t.Parallel()

	t.Run("replaces wholesale", func(t *testing.T) {
		t.Parallel()

		g := &scriptedGetter{responses: []func() ([]byte, error){
			body(`[{"id":1,"name":"Ann"},{"id":2,"name":"Bob"}]`),
			body(`[{"id":2,"name":"Bob"}]`),
		}}
		l, _ := newTestList(t, g)

		l.Init(context.Background())
		assert.Equal(t, []User{ann, bob}, l.Users())
		l.Reload(context.Background())
		assert.Equal(t, []User{bob}, l.Users())
	})

	t.Run("failure keeps the list", func(t *testing.T) {
		t.Parallel()

		g := &scriptedGetter{responses: []func() ([]byte, error){
			body(`[{"id":1,"name":"Ann"}]`),
			fail(errors.New("connection reset")),
		}}
		l, logs := newTestList(t, g)

		l.Init(context.Background())
		before := l.Users()
		l.Reload(context.Background())
		assert.Equal(t, before, l.Users())
		assert.Equal(t, fetchstate.DefaultErrorMessage, l.State().LastError)
		assert.Contains(t, logs.String(), "connection reset")
	})

	t.Run("C: failure then success", func(t *testing.T) {
		t.Parallel()

		g := &scriptedGetter{responses: []func() ([]byte, error){
			fail(errors.New("timeout")),
			body(`[{"id":2,"name":"Bob"}]`),
		}}
		l, _ := newTestList(t, g)

		l.Init(context.Background())
		assert.Equal(t, fetchstate.DefaultErrorMessage, l.State().LastError)
		assert.Empty(t, l.Users())

		l.Reload(context.Background())
		assert.Equal(t, "", l.State().LastError)
		assert.Equal(t, []User{bob}, l.Users())
	})
}

// fakeFetcher returns a fixed payload, to check the list keeps exactly what it received.
type fakeFetcher struct {
	users []User
	err   error
}

func (f *fakeFetcher) Fetch(context.Context, string) ([]User, error) { return f.users, f.err }
func (f *fakeFetcher) State() fetchstate.State                    { return fetchstate.State{} }

func TestList_KeepsPayload(t *testing.T) {
	t.Parallel()

	payload := []User{ann, bob}
	l := NewList(&fakeFetcher{users: payload}, WithLogger(slog.New(slog.DiscardHandler)))
	l.Init(context.Background())

	got := l.Users()
	assert.Equal(t, payload, got)
	assert.Same(t, &payload[0], &got[0], "the payload is stored as is, not copied or merged")
}

func TestList_FailureLoggedAfterCancel(t *testing.T) {
	t.Parallel()

	// the fetch failed on its own; the caller went away only afterwards
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetchErr := &fetchstate.FetchError{Locator: DefaultLocator, Message: fetchstate.DefaultErrorMessage, Err: errors.New("502 Bad Gateway")}

	var buf bytes.Buffer
	l := NewList(&fakeFetcher{err: fetchErr}, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	l.Init(ctx)

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "502 Bad Gateway")
	assert.NotContains(t, buf.String(), "cancelled")
}

func TestList_HTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": 1,
			"name": "Leanne Graham",
			"username": "Bret",
			"email": "Sincere@april.biz",
			"address": {"street": "Kulas Light", "suite": "Apt. 556", "city": "Gwenborough", "zipcode": "92998-3874", "geo": {"lat": "-37.3159", "lng": "81.1496"}},
			"phone": "1-770-736-8031 x56442",
			"website": "hildegard.org",
			"company": {"name": "Romaguera-Crona", "catchPhrase": "Multi-layered client-server neural-net", "bs": "harness real-time e-markets"}
		}]`))
	}))
	t.Cleanup(srv.Close)

	l, _ := newTestList(t, transport.New(transport.WithClient(srv.Client())), WithLocator(srv.URL+"/users"))
	l.Init(context.Background())

	require.Len(t, l.Users(), 1)
	u := l.Users()[0]
	assert.Equal(t, "Leanne Graham", u.Name)
	assert.Equal(t, "Bret", u.Username)
	assert.Equal(t, "Gwenborough", u.Address.City)
	assert.Equal(t, "81.1496", u.Address.Geo.Lng)
	assert.Equal(t, "Romaguera-Crona", u.Company.Name)
	assert.Equal(t, fetchstate.State{}, l.State())
}
