package pipeline

import (
	"testing"
	"time"

	"ais_watch/internal/decoders/dac001"
)

// A type 8 broadcast carrying DAC 1 FID 16, persons on board = 150.
const personsLine = "!AIVDM,1,1,,A,85MwpKh0D0Bh,3*2F"

func collect(t *testing.T) (*Processor, *[]Output) {
	t.Helper()
	var out []Output
	p := New(WithEmit(func(o Output) { out = append(out, o) }))
	return p, &out
}

func TestHandleLineDecodes(t *testing.T) {
	p, out := collect(t)
	p.HandleLine(personsLine, time.Now())

	if len(*out) != 1 {
		t.Fatalf("emitted %d outputs, want 1", len(*out))
	}
	o := (*out)[0]
	if o.Name != "persons_on_board" || o.Error != "" {
		t.Fatalf("output = %+v", o)
	}
	if o.Envelope.MMSI != 366999663 || o.Envelope.DAC != 1 || o.Envelope.FID != 16 {
		t.Errorf("envelope = %+v", o.Envelope)
	}
	m, ok := o.Decoded.(*dac001.Persons)
	if !ok {
		t.Fatalf("decoded type %T, want *dac001.Persons", o.Decoded)
	}
	if m.Persons != 150 {
		t.Errorf("Persons = %d, want 150", m.Persons)
	}

	st := p.Snapshot()
	if st.Lines != 1 || st.Decoded != 1 || st.Failed != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestHandleLineMultipart(t *testing.T) {
	p, out := collect(t)
	now := time.Now()
	p.HandleLine("!AIVDM,2,1,4,B,85MwpK,0*1E", now)
	if len(*out) != 0 {
		t.Fatalf("first fragment emitted %d outputs", len(*out))
	}
	p.HandleLine("!AIVDM,2,2,4,B,h0D0Bh,3*14", now.Add(time.Second))
	if len(*out) != 1 {
		t.Fatalf("emitted %d outputs after completion, want 1", len(*out))
	}
	if (*out)[0].Name != "persons_on_board" {
		t.Errorf("output = %+v", (*out)[0])
	}
	st := p.Snapshot()
	if st.Fragments != 1 || st.Decoded != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestHandleLineUnsupported(t *testing.T) {
	// DAC 999 FID 63 has no decoder; the attempt is emitted with the
	// error kind set so callers can keep or drop it.
	p, out := collect(t)
	p.HandleLine("!AIVDM,1,1,,A,81aucikqwrg=,0*74", time.Now())

	if len(*out) != 1 {
		t.Fatalf("emitted %d outputs, want 1", len(*out))
	}
	o := (*out)[0]
	if o.Decoded != nil || o.ErrorKind != "unsupported" {
		t.Errorf("output = %+v", o)
	}
	if o.Envelope.DAC != 999 || o.Envelope.FID != 63 {
		t.Errorf("envelope = %+v", o.Envelope)
	}
	st := p.Snapshot()
	if st.Failed != 1 || st.Decoded != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestHandleLineNonBinary(t *testing.T) {
	p, out := collect(t)
	p.HandleLine("!AIVDM,1,1,,B,11mg=5@000000000000000000000,0*57", time.Now())
	if len(*out) != 0 {
		t.Fatalf("position report emitted %d outputs", len(*out))
	}
	if st := p.Snapshot(); st.NonBinary != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestHandleLineGarbage(t *testing.T) {
	p, out := collect(t)
	p.HandleLine("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47", time.Now())
	p.HandleLine("not a sentence at all", time.Now())
	if len(*out) != 0 {
		t.Fatalf("garbage emitted %d outputs", len(*out))
	}
	if st := p.Snapshot(); st.BadSentence != 2 {
		t.Errorf("BadSentence = %d, want 2", st.BadSentence)
	}
}

func TestBroadcastSkipsFailures(t *testing.T) {
	var seen []interface{}
	p := New(WithBroadcast(broadcastFunc(func(v interface{}) {
		seen = append(seen, v)
	})))
	p.HandleLine(personsLine, time.Now())
	p.HandleLine("!AIVDM,1,1,,A,81aucikqwrg=,0*74", time.Now()) // unsupported
	if len(seen) != 1 {
		t.Errorf("broadcast %d messages, want only the successful decode", len(seen))
	}
}

type broadcastFunc func(v interface{})

func (f broadcastFunc) Broadcast(v interface{}) { f(v) }
