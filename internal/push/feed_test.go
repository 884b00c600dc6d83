package push

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"stationctl/internal/station"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func feedServer(t *testing.T, frames []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// Hold the connection open until the client closes it.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func TestSubscribeDeliversEvents(t *testing.T) {
	srv := feedServer(t, []string{
		`{"type":"insert","content":{"station_id":"av-1"}}`,
		`{"type":"remove","content":"av-1"}`,
	})
	defer srv.Close()

	sub, err := Subscribe(context.Background(), wsURL(srv), nil)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	var got []station.Event
	for len(got) < 2 {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				t.Fatalf("feed closed early, got %d events", len(got))
			}
			got = append(got, event)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for events, got %d", len(got))
		}
	}
	if got[0].Type != station.EventInsert || got[1].Type != station.EventRemove {
		t.Fatalf("unexpected event types: %q, %q", got[0].Type, got[1].Type)
	}
}

func TestSubscribeSkipsMalformedFrames(t *testing.T) {
	srv := feedServer(t, []string{
		`not json`,
		`{"content":{"station_id":"av-1"}}`,
		`{"type":"update","content":{"station_id":"av-1","settings":{"room":"plenary"}}}`,
	})
	defer srv.Close()

	sub, err := Subscribe(context.Background(), wsURL(srv), nil)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event, ok := <-sub.Events():
		if !ok {
			t.Fatal("feed closed before delivering a valid event")
		}
		if event.Type != station.EventUpdate {
			t.Fatalf("event type = %q, want %q", event.Type, station.EventUpdate)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the valid event")
	}
}

func TestSubscribeContextCancelClosesFeed(t *testing.T) {
	srv := feedServer(t, nil)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := Subscribe(ctx, wsURL(srv), nil)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	cancel()

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Fatal("expected closed channel after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel did not close after cancel")
	}
	if sub.Err() == nil {
		t.Fatal("expected a terminal error after cancel")
	}
}

func TestSubscribeDialFailure(t *testing.T) {
	if _, err := Subscribe(context.Background(), "ws://127.0.0.1:1/events", nil); err == nil {
		t.Fatal("expected dial error")
	}
}
