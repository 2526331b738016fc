// Package feed ingests raw NMEA sentence streams from network sources:
// UDP datagrams from local receivers and NATS subjects from upstream
// aggregators. Each source delivers lines to a Handler; sentence
// parsing and reassembly happen downstream.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net"
	"time"
)

// Handler receives one raw NMEA line with its arrival time.
type Handler func(line string, received time.Time)

// UDPListener receives NMEA sentences as UDP datagrams, the usual
// output mode of ais receivers and dispatchers. A datagram may carry
// several newline-separated sentences.
type UDPListener struct {
	conn *net.UDPConn
}

// ListenUDP binds a UDP socket on addr (e.g. ":10110").
func ListenUDP(addr string) (*UDPListener, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return &UDPListener{conn: conn}, nil
}

// Close closes the socket, unblocking Run.
func (l *UDPListener) Close() error {
	return l.conn.Close()
}

// Run reads datagrams until ctx is cancelled or the socket closes,
// delivering each non-empty line to h.
func (l *UDPListener) Run(ctx context.Context, h Handler) error {
	go func() {
		<-ctx.Done()
		_ = l.conn.Close()
	}()

	buf := make([]byte, 65536)
	for {
		n, _, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("udp read: %w", err)
		}
		now := time.Now()
		for _, line := range bytes.Split(buf[:n], []byte{'\n'}) {
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			h(string(line), now)
		}
	}
}

// LogDrops wraps h and logs how many lines per minute were delivered.
// Useful when tuning a receiver feed.
func LogDrops(h Handler) Handler {
	var count int
	var window time.Time
	return func(line string, received time.Time) {
		if window.IsZero() {
			window = received
		}
		count++
		if received.Sub(window) >= time.Minute {
			log.Printf("feed: %d lines in last minute", count)
			count = 0
			window = received
		}
		h(line, received)
	}
}
