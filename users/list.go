package users

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/motoki317/fetchstate"
)

// DefaultLocator is the resource the users are loaded from.
const DefaultLocator = "https://jsonplaceholder.typicode.com/users"

// Fetcher loads users and exposes the loading and error state of the last load.
// *fetchstate.Fetcher[[]User] implements Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]User, error)
	State() fetchstate.State
}

var _ Fetcher = (*fetchstate.Fetcher[[]User])(nil)

// NewFetcher builds the default Fetcher for users on top of getter.
func NewFetcher(getter fetchstate.Getter, options ...fetchstate.Option) (*fetchstate.Fetcher[[]User], error) {
	return fetchstate.New[[]User](getter, options...)
}

type ListOption func(l *List)

// WithLocator overrides DefaultLocator.
func WithLocator(locator string) ListOption {
	return func(l *List) {
		l.locator = locator
	}
}

// WithLogger sets the logger failures are reported to. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ListOption {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// List holds the users to display.
type List struct {
	fetcher Fetcher
	locator string
	logger  *slog.Logger

	once  sync.Once
	mu    sync.RWMutex // mu protects users
	users []User
}

// NewList creates an empty list loading users through fetcher.
func NewList(fetcher Fetcher, options ...ListOption) *List {
	l := &List{
		fetcher: fetcher,
		locator: DefaultLocator,
		logger:  slog.Default(),
		users:   []User{},
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Init loads the users. It is meant to be called by the host when the list becomes active;
// only the first call fetches, later calls do nothing.
func (l *List) Init(ctx context.Context) {
	l.once.Do(func() {
		l.load(ctx)
	})
}

// Reload fetches the users again, regardless of Init.
// Nothing in this package calls Reload; it is the manual refresh trigger for hosts that offer one.
func (l *List) Reload(ctx context.Context) {
	l.load(ctx)
}

// Users returns the users of the last successful load, as received. It is empty until a load succeeds.
// The returned slice is shared and must not be modified.
func (l *List) Users() []User {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.users
}

// State returns the loading and error state of the underlying fetcher.
func (l *List) State() fetchstate.State {
	return l.fetcher.State()
}

// Locator returns the resource the users are loaded from.
func (l *List) Locator() string {
	return l.locator
}

func (l *List) load(ctx context.Context) {
	users, err := l.fetcher.Fetch(ctx, l.locator)
	if err != nil && !errors.Is(err, fetchstate.ErrFetchFailed) {
		// unsubscribed; there is no outcome to handle
		l.logger.DebugContext(ctx, "load of users cancelled", slog.String("locator", l.locator))
		return
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to load users", slog.String("locator", l.locator), slog.Any("error", err))
		return
	}

	l.mu.Lock()
	l.users = users
	l.mu.Unlock()
}
