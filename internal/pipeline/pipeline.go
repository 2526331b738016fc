// Package pipeline connects the sentence layer to the decoder table
// and the configured sinks: every raw NMEA line flows through here on
// its way to storage, the websocket stream and downstream subjects.
package pipeline

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"ais_watch/internal/ais"
	"ais_watch/internal/bits"
	"ais_watch/internal/decoders"
	"ais_watch/internal/decoders/dac200"
	"ais_watch/internal/decoders/dac367"
	"ais_watch/internal/registry"
	"ais_watch/internal/storage"
)

// chBatchSize is how many archive rows accumulate before a flush.
const chBatchSize = 500

// Broadcaster receives every successful decode for live streaming.
type Broadcaster interface {
	Broadcast(v interface{})
}

// Publisher fans decoded messages out to a messaging subject.
type Publisher interface {
	Publish(subject string, v interface{}) error
}

// Stats counts what happened to the lines fed in.
type Stats struct {
	Lines        int
	BadSentence  int
	Fragments    int // multipart fragments still waiting
	NonBinary    int
	Unstructured int
	Decoded      int
	Failed       int
}

// Output is the JSON envelope emitted for every completed decode
// attempt, successful or not.
type Output struct {
	ReceivedAt string           `json:"received_at"`
	Channel    string           `json:"channel,omitempty"`
	Envelope   *ais.Binary      `json:"envelope"`
	Name       string           `json:"name,omitempty"`
	Decoded    registry.Message `json:"decoded,omitempty"`
	Error      string           `json:"error,omitempty"`
	ErrorKind  string           `json:"error_kind,omitempty"`
}

// Processor decodes a stream of NMEA lines and distributes the
// results. All sinks are optional. HandleLine serialises internally so
// several feed goroutines can share one Processor.
type Processor struct {
	mu      sync.Mutex
	asm     *ais.Assembler
	local   *storage.Local
	pg      *storage.PostgresDB
	hub     Broadcaster
	pub     Publisher
	subject string
	emit    func(Output) // extra sink, used by the extract subcommand

	chMu    sync.Mutex
	ch      *storage.ClickHouseDB
	chBatch []storage.CHInsertParams
	chNext  uint64

	Stats Stats
}

// Option configures a Processor.
type Option func(*Processor)

// WithLocal stores every decode attempt in the local SQLite database.
func WithLocal(db *storage.Local) Option {
	return func(p *Processor) { p.local = db }
}

// WithClickHouse archives decode attempts in batches.
func WithClickHouse(db *storage.ClickHouseDB, nextID uint64) Option {
	return func(p *Processor) {
		p.ch = db
		p.chNext = nextID
	}
}

// WithPostgres maintains vessel and sensor-site state.
func WithPostgres(db *storage.PostgresDB) Option {
	return func(p *Processor) { p.pg = db }
}

// WithBroadcast streams successful decodes to a websocket hub.
func WithBroadcast(h Broadcaster) Option {
	return func(p *Processor) { p.hub = h }
}

// WithPublish publishes successful decodes on a messaging subject.
func WithPublish(pub Publisher, subject string) Option {
	return func(p *Processor) {
		p.pub = pub
		p.subject = subject
	}
}

// WithEmit calls fn for every completed decode attempt.
func WithEmit(fn func(Output)) Option {
	return func(p *Processor) { p.emit = fn }
}

// New creates a Processor with the given sinks.
func New(opts ...Option) *Processor {
	p := &Processor{asm: ais.NewAssembler(0)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Snapshot returns a copy of the counters.
func (p *Processor) Snapshot() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Stats
}

// HandleLine feeds one raw NMEA line through parse, reassembly, frame
// extraction and payload decode.
func (p *Processor) HandleLine(line string, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Stats.Lines++

	sent, err := ais.ParseSentence(line)
	if err != nil {
		p.Stats.BadSentence++
		return
	}

	payload, fill, done := p.asm.Add(sent, now)
	if !done {
		p.Stats.Fragments++
		return
	}

	data, nbits := bits.Dearmor(payload, fill)
	env, err := ais.DecodeFrame(data, nbits)
	if err != nil {
		if errors.Is(err, ais.ErrUnstructured) {
			p.Stats.Unstructured++
		} else {
			p.Stats.NonBinary++
		}
		return
	}

	out := Output{
		ReceivedAt: now.UTC().Format(time.RFC3339Nano),
		Channel:    sent.Channel,
		Envelope:   env,
	}

	msg, err := decoders.Decode(env.DAC, env.FID, env.Data, env.BitLength)
	if err != nil {
		p.Stats.Failed++
		out.Error = err.Error()
		var de *registry.DecodeError
		if errors.As(err, &de) {
			out.ErrorKind = de.Kind.String()
		}
	} else {
		p.Stats.Decoded++
		out.Name = msg.Name()
		out.Decoded = msg
	}

	p.store(out, line, now)
	p.updateState(env, msg, now)

	if msg != nil && p.hub != nil {
		p.hub.Broadcast(out)
	}
	if msg != nil && p.pub != nil {
		if err := p.pub.Publish(p.subject, out); err != nil {
			log.Printf("publish decoded message: %v", err)
		}
	}
	if p.emit != nil {
		p.emit(out)
	}
}

func (p *Processor) store(out Output, raw string, now time.Time) {
	name := out.Name
	if name == "" {
		if e, ok := decoders.Lookup(out.Envelope.DAC, out.Envelope.FID); ok {
			name = e.Name
		}
	}

	if p.local != nil {
		_, err := p.local.Insert(storage.InsertParams{
			ReceivedAt:  now,
			Channel:     out.Channel,
			MMSI:        out.Envelope.MMSI,
			MsgType:     out.Envelope.MsgType,
			DAC:         out.Envelope.DAC,
			FID:         out.Envelope.FID,
			Name:        name,
			RawSentence: raw,
			Decoded:     out.Decoded,
			ErrorKind:   out.ErrorKind,
			ErrorText:   out.Error,
		})
		if err != nil {
			log.Printf("local insert: %v", err)
		}
	}

	if p.ch != nil {
		p.chMu.Lock()
		p.chNext++
		var decoded interface{}
		if out.Decoded != nil {
			decoded = out.Decoded
		}
		p.chBatch = append(p.chBatch, storage.CHInsertParams{
			ID:          p.chNext,
			ReceivedAt:  now,
			Channel:     out.Channel,
			MMSI:        uint32(out.Envelope.MMSI),
			MsgType:     uint8(out.Envelope.MsgType),
			DAC:         uint16(out.Envelope.DAC),
			FID:         uint8(out.Envelope.FID),
			Name:        name,
			RawSentence: raw,
			Decoded:     decoded,
			ErrorKind:   out.ErrorKind,
			ErrorText:   out.Error,
		})
		full := len(p.chBatch) >= chBatchSize
		p.chMu.Unlock()
		if full {
			p.FlushArchive(context.Background())
		}
	}
}

// FlushArchive sends any buffered archive rows to ClickHouse. The
// serve loop calls this on a timer as well as on batch overflow.
func (p *Processor) FlushArchive(ctx context.Context) {
	if p.ch == nil {
		return
	}
	p.chMu.Lock()
	batch := p.chBatch
	p.chBatch = nil
	p.chMu.Unlock()
	if len(batch) == 0 {
		return
	}
	if err := p.ch.InsertBatch(ctx, batch); err != nil {
		log.Printf("archive flush (%d rows): %v", len(batch), err)
	}
}

// updateState maintains vessel and sensor-site state from the decoded
// message. Only a few message types carry usable positions.
func (p *Processor) updateState(env *ais.Binary, msg registry.Message, now time.Time) {
	if p.pg == nil {
		return
	}
	ctx := context.Background()

	v := storage.Vessel{
		MMSI:      int64(env.MMSI),
		LastDAC:   env.DAC,
		LastFID:   env.FID,
		FirstSeen: now,
		LastSeen:  now,
	}
	if msg != nil {
		v.LastName = msg.Name()
	}

	switch m := msg.(type) {
	case *dac200.InlandStatic:
		length := m.LengthM
		beam := m.BeamM
		draught := m.DraughtCm
		if err := p.pg.UpsertInlandStatic(ctx, storage.InlandStatic{
			MMSI:         int64(env.MMSI),
			ENI:          m.ENI,
			ShipType:     m.ShipType,
			ShipTypeText: m.ShipTypeText,
			LengthM:      &length,
			BeamM:        &beam,
			DraughtCm:    &draught,
			HazardClass:  m.Hazard,
			FirstSeen:    now,
			LastSeen:     now,
		}); err != nil {
			log.Printf("inland static upsert: %v", err)
		}
	case *dac200.SignalStatus:
		v.Longitude = m.Longitude
		v.Latitude = m.Latitude
	case *dac367.Environmental:
		for _, r := range m.Reports {
			loc, ok := r.(*dac367.LocationReport)
			if !ok {
				continue
			}
			if err := p.pg.UpsertSensorSite(ctx, storage.SensorSite{
				MMSI:      int64(env.MMSI),
				SiteID:    0, // location reports carry no site id on this layout
				Latitude:  loc.Latitude,
				Longitude: loc.Longitude,
				Owner:     loc.Owner,
				FirstSeen: now,
				LastSeen:  now,
			}); err != nil {
				log.Printf("sensor site upsert: %v", err)
			}
		}
	}

	if err := p.pg.UpsertVessel(ctx, v); err != nil {
		log.Printf("vessel upsert: %v", err)
	}
}
