package inbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tempinbox/internal/event"
	"github.com/nhle/tempinbox/internal/event/eventtest"
	"github.com/nhle/tempinbox/internal/mailtm"
	"github.com/nhle/tempinbox/internal/mailtm/mailtmtest"
	"github.com/nhle/tempinbox/internal/model"
)

type staticSession struct {
	sess model.Session
}

func (s staticSession) Current() (model.Session, bool) {
	return s.sess, s.sess.Valid()
}

var activeSession = staticSession{sess: model.Session{
	Address:   "abcdefghij@example.com",
	AuthToken: "abc",
	AccountID: "acct-1",
}}

// fakeTicker only fires when the owning fakeClock is advanced.
type fakeTicker struct {
	period  time.Duration
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *fakeTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{period: d, c: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance delivers every tick that falls within d to each live ticker.
// Sends block until the poll loop has received the tick.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	tickers := append([]*fakeTicker(nil), c.tickers...)
	start := c.now
	c.now = c.now.Add(d)
	c.mu.Unlock()

	for _, t := range tickers {
		for n := time.Duration(1); n*t.period <= d; n++ {
			if t.isStopped() {
				break
			}
			t.c <- start.Add(n * t.period)
		}
	}
}

func (c *fakeClock) live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if !t.isStopped() {
			n++
		}
	}
	return n
}

func newTestPoller(t *testing.T, baseURL string, sessions SessionSource, opts ...Option) (*Poller, *eventtest.Recorder) {
	t.Helper()
	rec := &eventtest.Recorder{}
	p := New(mailtm.NewClient(baseURL), sessions, rec, zerolog.Nop(), opts...)
	t.Cleanup(p.Stop)
	return p, rec
}

func message(id, from, subject, createdAt string) map[string]any {
	m := map[string]any{
		"id":        id,
		"from":      map[string]any{"address": from},
		"createdAt": createdAt,
	}
	if subject != "" {
		m["subject"] = subject
	}
	return m
}

func TestStartPolling_DoubleStartKeepsOneTimer(t *testing.T) {
	srv := mailtmtest.New(t)
	clock := &fakeClock{}
	p, _ := newTestPoller(t, srv.URL, activeSession, WithTicker(clock.NewTicker))

	interval := 5 * time.Second
	p.StartPolling(interval)
	p.StartPolling(interval)
	assert.Equal(t, 1, clock.live())
	assert.True(t, p.Polling())

	clock.Advance(2 * interval)

	require.Eventually(t, func() bool {
		return srv.Count(http.MethodGet, "/messages") == 2
	}, time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/messages"))
}

func TestStartPolling_DefaultInterval(t *testing.T) {
	clock := &fakeClock{}
	p, _ := newTestPoller(t, "http://127.0.0.1:0", activeSession, WithTicker(clock.NewTicker))

	p.StartPolling(0)

	require.Len(t, clock.tickers, 1)
	assert.Equal(t, DefaultInterval, clock.tickers[0].period)
}

func TestStop_CancelsTimer(t *testing.T) {
	srv := mailtmtest.New(t)
	clock := &fakeClock{}
	p, _ := newTestPoller(t, srv.URL, activeSession, WithTicker(clock.NewTicker))

	p.StartPolling(time.Second)
	p.Stop()
	p.Stop()

	assert.False(t, p.Polling())
	assert.Zero(t, clock.live())

	clock.Advance(3 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, srv.Count(http.MethodGet, "/messages"))
}

func TestPolling_ContinuesAfterFailure(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.SetFail("GET /messages", http.StatusInternalServerError)
	clock := &fakeClock{}
	p, rec := newTestPoller(t, srv.URL, activeSession, WithTicker(clock.NewTicker))

	p.StartPolling(time.Second)
	clock.Advance(time.Second)
	require.Eventually(t, func() bool {
		return len(eventtest.Of[event.FetchFailedMsg](rec)) == 1
	}, time.Second, 5*time.Millisecond)

	srv.SetFail("GET /messages", 0)
	clock.Advance(time.Second)
	require.Eventually(t, func() bool {
		return len(eventtest.Of[event.ListReplacedMsg](rec)) == 1
	}, time.Second, 5*time.Millisecond)
	assert.True(t, p.Polling())
}

func TestFetchMessages_NoSessionIsNoop(t *testing.T) {
	srv := mailtmtest.New(t)
	p, rec := newTestPoller(t, srv.URL, staticSession{})

	p.FetchMessages(context.Background())

	assert.Empty(t, srv.Requests())
	assert.Empty(t, rec.All())
}

func TestFetchMessages_PartialSessionIsNoop(t *testing.T) {
	srv := mailtmtest.New(t)
	p, _ := newTestPoller(t, srv.URL, staticSession{sess: model.Session{AuthToken: "abc"}})

	p.FetchMessages(context.Background())

	assert.Empty(t, srv.Requests())
}

func TestFetchMessages_EmptyList(t *testing.T) {
	srv := mailtmtest.New(t)
	p, rec := newTestPoller(t, srv.URL, activeSession)

	p.FetchMessages(context.Background())

	lists := eventtest.Of[event.ListReplacedMsg](rec)
	require.Len(t, lists, 1)
	assert.True(t, lists[0].Empty())
}

func TestFetchMessages_PreservesOrder(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.SetMessages([]map[string]any{
		message("m3", "c@x.test", "third", "2024-01-03T00:00:00+00:00"),
		message("m1", "a@x.test", "", "2024-01-01T00:00:00+00:00"),
		message("m2", "b@x.test", "second", "not a time"),
	})
	p, rec := newTestPoller(t, srv.URL, activeSession)

	p.FetchMessages(context.Background())

	lists := eventtest.Of[event.ListReplacedMsg](rec)
	require.Len(t, lists, 1)
	msgs := lists[0].Messages
	require.Len(t, msgs, 3)

	assert.Equal(t, "m3", msgs[0].ID)
	assert.Equal(t, "m1", msgs[1].ID)
	assert.Equal(t, "m2", msgs[2].ID)

	assert.Equal(t, "c@x.test", msgs[0].SenderAddress)
	assert.Equal(t, model.NoSubject, msgs[1].Subject)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), msgs[0].ReceivedAt.UTC())
	assert.True(t, msgs[2].ReceivedAt.IsZero())

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer abc", reqs[0].Authorization)
}

func TestFetchMessages_FailureKeepsPreviousList(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.SetMessages([]map[string]any{message("m1", "a@x.test", "hi", "2024-01-01T00:00:00Z")})
	p, rec := newTestPoller(t, srv.URL, activeSession)

	p.FetchMessages(context.Background())
	srv.SetFail("GET /messages", http.StatusBadGateway)
	p.FetchMessages(context.Background())

	lists := eventtest.Of[event.ListReplacedMsg](rec)
	require.Len(t, lists, 1)
	assert.Equal(t, "m1", lists[0].Messages[0].ID)

	failures := eventtest.Of[event.FetchFailedMsg](rec)
	require.Len(t, failures, 1)
	assert.Equal(t, OpList, failures[0].Op)
	assert.True(t, IsFetchError(failures[0].Err))
}

func TestFetchMessages_NetworkErrorDoesNotEscape(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	p, rec := newTestPoller(t, url, activeSession)

	assert.NotPanics(t, func() { p.FetchMessages(context.Background()) })

	assert.Empty(t, eventtest.Of[event.ListReplacedMsg](rec))
	assert.Len(t, eventtest.Of[event.FetchFailedMsg](rec), 1)
}

func TestFetchMessages_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hydra:member": "nope"}`))
	}))
	defer srv.Close()
	p, rec := newTestPoller(t, srv.URL, activeSession)

	p.FetchMessages(context.Background())

	assert.Empty(t, eventtest.Of[event.ListReplacedMsg](rec))
	assert.Len(t, eventtest.Of[event.FetchFailedMsg](rec), 1)
}

func TestOpenMessage_PrefersHTML(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.Details["m1"] = map[string]any{
		"id":        "m1",
		"from":      map[string]any{"address": "a@x.test"},
		"subject":   "greeting",
		"html":      []string{"<p>hi</p>"},
		"intro":     "hi",
		"createdAt": "2024-01-01T10:00:00Z",
	}
	p, rec := newTestPoller(t, srv.URL, activeSession)

	p.OpenMessage(context.Background(), "m1")

	details := eventtest.Of[event.DetailOpenedMsg](rec)
	require.Len(t, details, 1)
	d := details[0].Detail
	assert.Equal(t, "<p>hi</p>", d.BodyContent)
	assert.True(t, d.IsHTML)
	assert.Equal(t, "greeting", d.Subject)
	assert.Equal(t, "a@x.test", d.SenderAddress)
}

func TestOpenMessage_FallsBackToIntro(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.Details["m2"] = map[string]any{
		"id":        "m2",
		"from":      map[string]any{"address": "a@x.test"},
		"intro":     "hello",
		"createdAt": "2024-01-01T10:00:00Z",
	}
	p, rec := newTestPoller(t, srv.URL, activeSession)

	p.OpenMessage(context.Background(), "m2")

	details := eventtest.Of[event.DetailOpenedMsg](rec)
	require.Len(t, details, 1)
	assert.Equal(t, "hello", details[0].Detail.BodyContent)
	assert.False(t, details[0].Detail.IsHTML)
	assert.Equal(t, model.NoSubject, details[0].Detail.Subject)
}

func TestOpenMessage_RefetchesEveryTime(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.Details["m1"] = map[string]any{"id": "m1", "intro": "x"}
	p, _ := newTestPoller(t, srv.URL, activeSession)

	p.OpenMessage(context.Background(), "m1")
	p.OpenMessage(context.Background(), "m1")

	assert.Equal(t, 2, srv.Count(http.MethodGet, "/messages/m1"))
}

func TestOpenMessage_FailureEmitsNoDetail(t *testing.T) {
	srv := mailtmtest.New(t)
	p, rec := newTestPoller(t, srv.URL, activeSession)

	p.OpenMessage(context.Background(), "missing")

	assert.Empty(t, eventtest.Of[event.DetailOpenedMsg](rec))
	failures := eventtest.Of[event.FetchFailedMsg](rec)
	require.Len(t, failures, 1)
	assert.Equal(t, OpDetail, failures[0].Op)
}

func TestOpenSource_ParsesRawMessage(t *testing.T) {
	srv := mailtmtest.New(t)
	srv.Sources["m1"] = "From: a@x.test\r\nSubject: raw\r\nContent-Type: text/plain\r\n\r\nplain body\r\n"
	p, rec := newTestPoller(t, srv.URL, activeSession)

	p.OpenSource(context.Background(), "m1")

	sources := eventtest.Of[event.SourceOpenedMsg](rec)
	require.Len(t, sources, 1)
	raw := sources[0].Raw
	assert.Equal(t, "m1", raw.ID)
	assert.Contains(t, raw.TextBody, "plain body")
}

func TestSelectBody(t *testing.T) {
	body, isHTML := SelectBody(&mailtm.MessageDetail{HTML: []string{"<b>a</b>", "<b>b</b>"}, Intro: "a"})
	assert.Equal(t, "<b>a</b>", body)
	assert.True(t, isHTML)

	body, isHTML = SelectBody(&mailtm.MessageDetail{HTML: []string{}, Intro: "a"})
	assert.Equal(t, "a", body)
	assert.False(t, isHTML)
}
