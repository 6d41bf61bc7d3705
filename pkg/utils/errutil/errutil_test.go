package errutil_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/utils/errutil"
)

func TestHandle(t *testing.T) {
	gt.NoError(t, errutil.Handle(context.Background(), nil, "nothing"))

	base := errors.New("boom")
	err := errutil.Handle(context.Background(), goerr.Wrap(base, "wrapped", goerr.V("key", "value")), "failed")
	gt.Bool(t, errors.Is(err, base)).True()
}

func TestHandleHTTP(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "client error", status: http.StatusBadRequest},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			errutil.HandleHTTP(context.Background(), w, goerr.New("bad thing"), tt.status)

			gt.Value(t, w.Code).Equal(tt.status)
			gt.Value(t, w.Header().Get("Content-Type")).Equal("application/json")

			var body map[string]string
			gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
			gt.Value(t, body["error"]).Equal("bad thing")
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, nil, http.StatusInternalServerError)
		gt.Value(t, w.Body.Len()).Equal(0)
	})
}

type capturedEvents struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (c *capturedEvents) Flush(time.Duration) bool {
	return true
}

func (c *capturedEvents) FlushWithContext(context.Context) bool {
	return true
}

func (c *capturedEvents) Configure(sentry.ClientOptions) {}

func (c *capturedEvents) Close() {}

func (c *capturedEvents) SendEvent(event *sentry.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *capturedEvents) all() []*sentry.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*sentry.Event{}, c.events...)
}

func withSentryHub(t *testing.T) (context.Context, *capturedEvents) {
	t.Helper()
	transport := &capturedEvents{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: transport})
	gt.NoError(t, err).Required()
	hub := sentry.NewHub(client, sentry.NewScope())
	return sentry.SetHubOnContext(context.Background(), hub), transport
}

func TestSentryCapture(t *testing.T) {
	t.Run("goerr values are attached as the error context", func(t *testing.T) {
		ctx, transport := withSentryHub(t)
		err := goerr.New("store failed", goerr.V("profile_id", "payment-breach"))
		_ = errutil.Handle(ctx, err, "failed")

		events := transport.all()
		gt.A(t, events).Length(1).Required()
		gt.Value(t, events[0].Contexts["error"]["profile_id"]).Equal(any("payment-breach"))
	})

	t.Run("plain errors are captured without context", func(t *testing.T) {
		ctx, transport := withSentryHub(t)
		_ = errutil.Handle(ctx, errors.New("plain"), "failed")
		gt.A(t, transport.all()).Length(1)
	})

	t.Run("client errors are not reported", func(t *testing.T) {
		ctx, transport := withSentryHub(t)
		errutil.HandleHTTP(ctx, httptest.NewRecorder(), goerr.New("bad input"), http.StatusBadRequest)
		gt.A(t, transport.all()).Length(0)
	})

	t.Run("server errors are reported", func(t *testing.T) {
		ctx, transport := withSentryHub(t)
		errutil.HandleHTTP(ctx, httptest.NewRecorder(), goerr.New("down"), http.StatusInternalServerError)
		gt.A(t, transport.all()).Length(1)
	})
}
