package telegram

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fitflow/fitflow/internal/models"
)

const getMeBody = `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"FitFlow","username":"fitflow_bot"}}`

type sentMessage struct {
	chatID string
	text   string
}

// botServer fakes the Bot API endpoints the SDK talks to. The pending
// update batch is served once; later getUpdates calls return empty.
type botServer struct {
	mu       sync.Mutex
	pending  string
	offsets  []string
	sent     []sentMessage
	sendFail bool
	paths    []string
}

func (b *botServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.paths = append(b.paths, r.URL.Path)
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			io.WriteString(w, getMeBody)
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			b.offsets = append(b.offsets, r.FormValue("offset"))
			batch := b.pending
			b.pending = ""
			if batch == "" {
				batch = "[]"
			}
			io.WriteString(w, `{"ok":true,"result":`+batch+`}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			if b.sendFail {
				w.WriteHeader(http.StatusForbidden)
				io.WriteString(w, `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`)
				return
			}
			b.sent = append(b.sent, sentMessage{chatID: r.FormValue("chat_id"), text: r.FormValue("text")})
			io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":0}}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
		}
	})
}

func newTestClient(t *testing.T, bs *botServer) *Client {
	t.Helper()
	srv := httptest.NewServer(bs.handler())
	t.Cleanup(srv.Close)
	c, err := NewClient(
		WithToken("123:abc"),
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithPollTimeout(time.Second),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClientRequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	if _, err := NewClient(); err == nil {
		t.Error("NewClient() without token should fail")
	}
}

func TestSendMessage(t *testing.T) {
	bs := &botServer{}
	c := newTestClient(t, bs)

	if err := c.SendMessage(context.Background(), 42, "hello"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	bs.mu.Lock()
	defer bs.mu.Unlock()
	if len(bs.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(bs.sent))
	}
	if got := bs.sent[0]; got.chatID != "42" || got.text != "hello" {
		t.Errorf("sent = %+v, want chat 42 text %q", got, "hello")
	}
	for _, p := range bs.paths {
		if strings.HasSuffix(p, "/sendMessage") && p != "/bot123:abc/sendMessage" {
			t.Errorf("sendMessage path = %q, want /bot123:abc/sendMessage", p)
		}
	}
}

func TestSendMessageRejected(t *testing.T) {
	bs := &botServer{sendFail: true}
	c := newTestClient(t, bs)

	if err := c.SendMessage(context.Background(), 42, "hello"); err == nil {
		t.Error("SendMessage() with a Bot API rejection should fail")
	}
}

func TestPollLoopDeliversUpdatesAndAdvancesOffset(t *testing.T) {
	bs := &botServer{pending: `[
		{"update_id":10,"message":{"message_id":1,"date":1700000000,"text":"/start","chat":{"id":7}}},
		{"update_id":11,"message":{"message_id":2,"date":1700000001,"chat":{"id":7}}},
		{"update_id":12,"message":{"message_id":3,"date":1700000002,"text":"250","chat":{"id":8}}}
	]`}
	c := newTestClient(t, bs)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// The textless update must be skipped.
	want := []models.InboundMessage{
		{UserID: 7, Text: "/start", Time: 1700000000},
		{UserID: 8, Text: "250", Time: 1700000002},
	}
	for i, w := range want {
		select {
		case got := <-c.Updates():
			if got != w {
				t.Errorf("update %d = %+v, want %+v", i, got, w)
			}
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for update")
		}
	}

	// The batch must move the getUpdates offset past the last update id.
	deadline := time.Now().Add(3 * time.Second)
	for {
		bs.mu.Lock()
		advanced := false
		for _, off := range bs.offsets {
			if off == "13" {
				advanced = true
			}
		}
		bs.mu.Unlock()
		if advanced {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("getUpdates offset never advanced to 13")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if _, ok := <-c.Updates(); ok {
		t.Error("Updates() channel should be closed after Stop()")
	}
}

func TestStopWithoutStart(t *testing.T) {
	bs := &botServer{}
	c := newTestClient(t, bs)
	if err := c.Stop(); err != nil {
		t.Fatalf("Stop() before Start should be a no-op, got %v", err)
	}
}
