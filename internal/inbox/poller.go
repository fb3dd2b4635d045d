// Package inbox keeps the rendered message list in step with the remote
// mailbox and fetches message bodies on demand.
package inbox

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/tempinbox/internal/event"
	"github.com/nhle/tempinbox/internal/mailtm"
	"github.com/nhle/tempinbox/internal/model"
)

// DefaultInterval is the poll period used when none is given.
const DefaultInterval = 5 * time.Second

// MessageSource is the subset of the mail API the poller reads from.
type MessageSource interface {
	Messages(ctx context.Context, token string) ([]mailtm.Message, error)
	Message(ctx context.Context, token, id string) (*mailtm.MessageDetail, error)
	Source(ctx context.Context, token, id string) (*mailtm.Source, error)
}

// SessionSource exposes the current session. *session.Store satisfies it.
type SessionSource interface {
	Current() (model.Session, bool)
}

// Option configures a Poller.
type Option func(*Poller)

// WithTicker replaces the ticker constructor.
func WithTicker(fn TickerFunc) Option {
	return func(p *Poller) {
		p.newTicker = fn
	}
}

// Poller periodically refreshes the message list. Fetch failures are
// logged and never stop the timer; there is no backoff.
//
// Overlapping fetches (a manual refresh racing a scheduled poll) are not
// coordinated: each response is emitted as it arrives and the last one
// wins.
type Poller struct {
	api      MessageSource
	sessions SessionSource
	sink     event.Sink
	log      zerolog.Logger

	newTicker TickerFunc

	mu     sync.Mutex
	ticker Ticker
	cancel context.CancelFunc
}

// New creates a Poller. It does nothing until StartPolling or one of the
// fetch methods is called.
func New(
	api MessageSource,
	sessions SessionSource,
	sink event.Sink,
	log zerolog.Logger,
	opts ...Option,
) *Poller {
	if sink == nil {
		sink = event.Discard
	}
	p := &Poller{
		api:       api,
		sessions:  sessions,
		sink:      sink,
		log:       log,
		newTicker: NewTimeTicker,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// StartPolling calls FetchMessages every interval. Any timer started
// earlier is cancelled first, so at most one timer is ever active.
func (p *Poller) StartPolling(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	t := p.newTicker(interval)
	p.ticker = t
	p.cancel = cancel

	p.log.Debug().Dur("interval", interval).Msg("polling started")
	go p.loop(ctx, t)
}

// Stop cancels the active timer, if any. In-flight fetches finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Polling reports whether a timer is active.
func (p *Poller) Polling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticker != nil
}

func (p *Poller) stopLocked() {
	if p.ticker == nil {
		return
	}
	p.ticker.Stop()
	p.cancel()
	p.ticker = nil
	p.cancel = nil
}

// loop runs until ctx is cancelled. Fetches use a context detached from
// ctx: replacing the timer must not abort a request already on the wire.
func (p *Poller) loop(ctx context.Context, t Ticker) {
	fetchCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			p.FetchMessages(fetchCtx)
		}
	}
}

// FetchMessages requests the message list and emits a full-list replace.
// Without an active session it returns immediately. On failure the
// previously rendered list is left untouched.
func (p *Poller) FetchMessages(ctx context.Context) {
	sess, ok := p.sessions.Current()
	if !ok {
		return
	}

	msgs, err := p.api.Messages(ctx, sess.AuthToken)
	if err != nil {
		p.fail(&FetchError{Op: OpList, Err: err})
		return
	}

	p.sink.Send(event.ListReplacedMsg{Messages: toSummaries(msgs)})
}

// OpenMessage fetches a message by id and emits a detail view. Bodies are
// never cached; every call goes to the API. On failure the currently open
// detail view, if any, stays as it is.
func (p *Poller) OpenMessage(ctx context.Context, id string) {
	sess, ok := p.sessions.Current()
	if !ok {
		return
	}

	d, err := p.api.Message(ctx, sess.AuthToken, id)
	if err != nil {
		p.fail(&FetchError{Op: OpDetail, MessageID: id, Err: err})
		return
	}

	p.sink.Send(event.DetailOpenedMsg{Detail: toDetail(d)})
}

// OpenSource fetches and parses the raw RFC 5322 source of a message.
func (p *Poller) OpenSource(ctx context.Context, id string) {
	sess, ok := p.sessions.Current()
	if !ok {
		return
	}

	src, err := p.api.Source(ctx, sess.AuthToken, id)
	if err != nil {
		p.fail(&FetchError{Op: OpSource, MessageID: id, Err: err})
		return
	}

	raw, err := ParseRaw(id, src.Data)
	if err != nil {
		p.fail(&FetchError{Op: OpSource, MessageID: id, Err: err})
		return
	}

	p.sink.Send(event.SourceOpenedMsg{Raw: raw})
}

func (p *Poller) fail(err *FetchError) {
	p.log.Warn().
		Err(err.Err).
		Str("op", err.Op).
		Str("message_id", err.MessageID).
		Int("status", mailtm.StatusCode(err.Err)).
		Msg("fetch failed")
	p.sink.Send(event.FetchFailedMsg{Op: err.Op, Err: err})
}
