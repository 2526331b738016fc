package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSConfig holds NATS connection settings.
type NATSConfig struct {
	URL     string // server URL, e.g. nats://localhost:4222
	Subject string // subject carrying raw NMEA lines
	Name    string // connection name shown in server monitoring
}

// NATSFeed subscribes to a subject of raw NMEA lines and can publish
// decoded results back out for downstream consumers.
type NATSFeed struct {
	nc      *nats.Conn
	subject string
}

// ConnectNATS connects to a NATS server with automatic reconnects.
func ConnectNATS(cfg NATSConfig) (*NATSFeed, error) {
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.Name == "" {
		cfg.Name = "ais_watch"
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("nats reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", cfg.URL, err)
	}
	return &NATSFeed{nc: nc, subject: cfg.Subject}, nil
}

// Close drains and closes the connection.
func (f *NATSFeed) Close() {
	_ = f.nc.Drain()
}

// Run subscribes to the configured subject and delivers each message
// payload as one NMEA line until ctx is cancelled.
func (f *NATSFeed) Run(ctx context.Context, h Handler) error {
	if f.subject == "" {
		return fmt.Errorf("no nats subject configured")
	}
	ch := make(chan *nats.Msg, 1024)
	sub, err := f.nc.ChanSubscribe(f.subject, ch)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", f.subject, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-ch:
			h(string(msg.Data), time.Now())
		}
	}
}

// Publish marshals v as JSON and publishes it on subject. Used to fan
// decoded messages out to downstream consumers.
func (f *NATSFeed) Publish(subject string, v interface{}) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal publish payload: %w", err)
	}
	return f.nc.Publish(subject, buf)
}
