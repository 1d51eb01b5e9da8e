package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/VxVxN/trendingcompanies/internal/models"
)

const UnknownErrorMessage = "An unknown error occurred"

type Fetcher interface {
	FetchCompanies(ctx context.Context) ([]models.Company, error)
}

// Loader runs exactly one fetch for a mount and holds its result.
type Loader struct {
	id     string
	logger *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	state  State
	closed bool
}

// Start returns a loader in the loading state and fetches in the background.
// Close must be called to release the request when the mount goes away.
func Start(ctx context.Context, fetcher Fetcher, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	l := &Loader{
		id:     uuid.NewString(),
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
		state:  loadingState(),
	}

	go l.run(ctx, fetcher)

	return l
}

func (l *Loader) ID() string { return l.id }

func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Done is closed once the fetch goroutine has returned.
func (l *Loader) Done() <-chan struct{} { return l.done }

// Wait blocks until the fetch settles or ctx is done, then returns the
// current state. The error is ctx.Err() when ctx ended first.
func (l *Loader) Wait(ctx context.Context) (State, error) {
	select {
	case <-l.done:
		return l.State(), nil
	case <-ctx.Done():
		return l.State(), ctx.Err()
	}
}

// Close cancels an in-flight request and waits for the fetch goroutine.
// Results arriving after Close are dropped.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	l.cancel()
	<-l.done
}

func (l *Loader) run(ctx context.Context, fetcher Fetcher) {
	defer close(l.done)
	defer l.cancel()

	companies, err := l.fetch(ctx, fetcher)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		l.logger.Debug("Discarding companies result after close", "mount_id", l.id)
		return
	}

	if err != nil {
		l.logger.Error("Error fetching companies", "mount_id", l.id, "error", err)
		l.state = State{Status: StatusFailed, Companies: []models.Company{}, Err: errorMessage(err)}
		return
	}

	if companies == nil {
		companies = []models.Company{}
	}
	l.state = State{Status: StatusLoaded, Companies: companies}
}

func (l *Loader) fetch(ctx context.Context, fetcher Fetcher) (companies []models.Company, err error) {
	defer func() {
		if r := recover(); r != nil {
			companies = nil
			err = panicError{value: r}
		}
	}()
	return fetcher.FetchCompanies(ctx)
}

// panicError keeps the recovered value for logging. Only panics carrying an
// error contribute a message.
type panicError struct {
	value any
}

func (p panicError) Error() string {
	if err, ok := p.value.(error); ok {
		return err.Error()
	}
	return ""
}

func (p panicError) LogValue() slog.Value {
	return slog.StringValue(fmt.Sprintf("panic: %v", p.value))
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}
