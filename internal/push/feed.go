package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"stationctl/internal/logging"
	"stationctl/internal/station"
)

const (
	handshakeTimeout = 10 * time.Second
	maxMessageSize   = 1 << 20
	eventBufferSize  = 64
)

// Subscription is a live connection to the push feed. Events arrive on
// Events until the connection drops or Close is called, after which the
// channel is closed and Err reports the terminal error.
type Subscription struct {
	conn   *websocket.Conn
	events chan station.Event
	logger *slog.Logger

	closeOnce sync.Once
	done      chan struct{}

	mu  sync.Mutex
	err error
}

// Subscribe dials the push feed URL and starts reading events. The context
// bounds the handshake and, once established, cancellation closes the
// subscription.
func Subscribe(ctx context.Context, url string, logger *slog.Logger) (*Subscription, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial push feed %s: %w", url, err)
	}
	conn.SetReadLimit(maxMessageSize)

	sub := &Subscription{
		conn:   conn,
		events: make(chan station.Event, eventBufferSize),
		logger: logging.WithComponent(logger, "push"),
		done:   make(chan struct{}),
	}
	go sub.readLoop()
	go func() {
		select {
		case <-ctx.Done():
			sub.shutdown(ctx.Err())
		case <-sub.done:
		}
	}()
	sub.logger.Info("subscribed", slog.String("url", url))
	return sub, nil
}

// Events returns the stream of decoded station events. The channel closes
// when the subscription ends.
func (s *Subscription) Events() <-chan station.Event {
	return s.events
}

// Err reports why the subscription ended, nil after a clean Close.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears down the connection. Safe to call more than once.
func (s *Subscription) Close() error {
	s.shutdown(nil)
	return nil
}

func (s *Subscription) shutdown(cause error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.err = cause
		s.mu.Unlock()
		close(s.done)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = s.conn.Close()
	})
}

func (s *Subscription) readLoop() {
	defer close(s.events)
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.logger.Warn("feed closed", slog.String("error", err.Error()))
				}
				s.shutdown(err)
			}
			return
		}

		var event station.Event
		if err := json.Unmarshal(raw, &event); err != nil {
			s.logger.Warn("skipping malformed frame", slog.String("error", err.Error()))
			continue
		}
		if event.Type == "" {
			s.logger.Warn("skipping frame without event type")
			continue
		}

		select {
		case s.events <- event:
		case <-s.done:
			return
		}
	}
}
