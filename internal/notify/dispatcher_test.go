package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gatelogic/gatelogic-core/internal/infrastructure/config"
)

type stubResolver struct {
	name string
	err  error
}

func (r *stubResolver) GetName(ctx context.Context, id int64) (string, error) {
	return r.name, r.err
}

type recordingChannel struct {
	mu      sync.Mutex
	name    string
	err     error
	subject string
	body    string
	calls   int
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Send(ctx context.Context, subject, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.subject = subject
	c.body = body
	return c.err
}

func TestDispatcher_Notify(t *testing.T) {
	email := &recordingChannel{name: "email"}
	sms := &recordingChannel{name: "sms"}
	d := NewDispatcher(&stubResolver{name: "Alice"}, nil, email, sms)

	ts := time.Date(2026, 5, 10, 18, 4, 5, 0, time.UTC)
	d.Notify(context.Background(), 5, ts)

	for _, ch := range []*recordingChannel{email, sms} {
		if ch.calls != 1 {
			t.Errorf("%s calls = %d, want 1", ch.name, ch.calls)
		}
		if ch.subject != "House entry notification" {
			t.Errorf("%s subject = %q", ch.name, ch.subject)
		}
		want := "Alice entered the house at 18:04:05 2026-05-10."
		if ch.body != want {
			t.Errorf("%s body = %q, want %q", ch.name, ch.body, want)
		}
	}
}

func TestDispatcher_FailingChannelDoesNotSuppressOthers(t *testing.T) {
	broken := &recordingChannel{name: "email", err: errors.New("connection refused")}
	working := &recordingChannel{name: "sms"}
	d := NewDispatcher(&stubResolver{name: "Alice"}, nil, broken, working)

	d.Notify(context.Background(), 5, time.Now())

	if broken.calls != 1 {
		t.Errorf("broken channel calls = %d, want 1 (single attempt, no retry)", broken.calls)
	}
	if working.calls != 1 {
		t.Errorf("working channel calls = %d, want 1", working.calls)
	}
}

func TestDispatcher_UnnamedRecordFallsBackToID(t *testing.T) {
	ch := &recordingChannel{name: "email"}
	d := NewDispatcher(&stubResolver{name: ""}, nil, ch)

	d.Notify(context.Background(), 42, time.Now())

	if !strings.HasPrefix(ch.body, "id 42 entered") {
		t.Errorf("body = %q, want id fallback prefix", ch.body)
	}
}

func TestDispatcher_ResolverErrorStillDelivers(t *testing.T) {
	ch := &recordingChannel{name: "email"}
	d := NewDispatcher(&stubResolver{err: errors.New("database closed")}, nil, ch)

	d.Notify(context.Background(), 7, time.Now())

	if ch.calls != 1 {
		t.Errorf("calls = %d, want 1 (lookup failure must not drop the notification)", ch.calls)
	}
}

func TestDispatcher_NoChannels(t *testing.T) {
	d := NewDispatcher(&stubResolver{name: "Alice"}, nil)
	// Must be a silent no-op.
	d.Notify(context.Background(), 5, time.Now())
	if d.ChannelCount() != 0 {
		t.Errorf("ChannelCount() = %d, want 0", d.ChannelCount())
	}
}

func TestSMSChannel_Send(t *testing.T) {
	var gotPath, gotAuthUser, gotBody, gotFrom, gotTo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuthUser, _, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		gotBody = r.PostFormValue("Body")
		gotFrom = r.PostFormValue("From")
		gotTo = r.PostFormValue("To")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	ch := NewSMSChannel(config.SMSConfig{
		AccountSID: "AC123",
		AuthToken:  "token",
		From:       "+15550001111",
		To:         "+15552223333",
	}, srv.Client())
	ch.baseURL = srv.URL

	err := ch.Send(context.Background(), "House entry notification",
		"Alice entered the house at 18:04:05 2026-05-10.")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotPath != "/Accounts/AC123/Messages.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuthUser != "AC123" {
		t.Errorf("basic auth user = %q, want AC123", gotAuthUser)
	}
	if gotBody != "Alice entered the house at 18:04:05 2026-05-10" {
		t.Errorf("Body = %q (trailing period should be trimmed)", gotBody)
	}
	if gotFrom != "+15550001111" || gotTo != "+15552223333" {
		t.Errorf("From/To = %q/%q", gotFrom, gotTo)
	}
}

func TestSMSChannel_Send_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Authenticate"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	ch := NewSMSChannel(config.SMSConfig{AccountSID: "AC123", AuthToken: "bad"}, srv.Client())
	ch.baseURL = srv.URL

	err := ch.Send(context.Background(), "s", "b")
	if err == nil {
		t.Fatal("Send() error = nil, want auth failure")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want status code in message", err)
	}
}
