package appstate

import (
	"context"
	"sync"
	"time"

	"github.com/ladderhq/ladder/pkg/apiclient"
)

// DefaultPollInterval is how often the poller checks for new messages
const DefaultPollInterval = 2 * time.Second

// MessagePoller periodically fetches new messages for one conversation and
// hands them to the callback. Each fetch asks only for messages newer than
// the last one seen. Ticks are coalesced: if a fetch is still in flight
// when the next tick fires, that tick is skipped instead of queueing a
// second request behind a slow network.
type MessagePoller struct {
	client         *apiclient.Client
	conversationID int64
	interval       time.Duration
	onMessages     func([]*apiclient.Message)
	onError        func(error)

	mu       sync.Mutex
	lastSeen time.Time
	inFlight bool
	cancel   context.CancelFunc
	done     chan struct{}
	fetches  sync.WaitGroup
}

// PollerOption configures a MessagePoller
type PollerOption func(*MessagePoller)

// WithPollInterval overrides the default tick interval
func WithPollInterval(d time.Duration) PollerOption {
	return func(p *MessagePoller) { p.interval = d }
}

// WithPollErrorHandler installs a callback for fetch failures. Without one,
// failures are dropped and retried on the next tick.
func WithPollErrorHandler(fn func(error)) PollerOption {
	return func(p *MessagePoller) { p.onError = fn }
}

// NewMessagePoller creates a poller for the given conversation. onMessages
// receives each batch of newly arrived messages, oldest first.
func NewMessagePoller(client *apiclient.Client, conversationID int64, onMessages func([]*apiclient.Message), opts ...PollerOption) *MessagePoller {
	p := &MessagePoller{
		client:         client,
		conversationID: conversationID,
		interval:       DefaultPollInterval,
		onMessages:     onMessages,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins polling. The first fetch happens immediately and returns the
// full message history. Polling stops when ctx is cancelled or Stop is
// called. Start must be called at most once.
func (p *MessagePoller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	p.cancel = cancel
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.run(ctx)
}

func (p *MessagePoller) run(ctx context.Context) {
	defer close(p.done)

	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.poll(ctx)
		}
	}
}

// poll fetches once, unless a previous fetch is still running
func (p *MessagePoller) poll(ctx context.Context) {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	p.fetches.Add(1)
	after := p.lastSeen
	p.mu.Unlock()

	defer p.fetches.Done()

	messages, err := p.client.Messages(ctx, p.conversationID, after)

	p.mu.Lock()
	p.inFlight = false
	if err == nil && len(messages) > 0 {
		p.lastSeen = messages[len(messages)-1].CreatedAt
	}
	p.mu.Unlock()

	if err != nil {
		if p.onError != nil && ctx.Err() == nil {
			p.onError(err)
		}
		return
	}

	if len(messages) > 0 {
		p.onMessages(messages)
	}
}

// Stop cancels polling and waits for the in-flight fetch, if any, to
// finish. Safe to call multiple times.
func (p *MessagePoller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.fetches.Wait()
}
