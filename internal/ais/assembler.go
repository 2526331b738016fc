package ais

import (
	"fmt"
	"time"
)

// DefaultAssemblyTimeout is how long a partial multi-part message is
// kept waiting for its remaining fragments.
const DefaultAssemblyTimeout = 30 * time.Second

type partial struct {
	fragments []*Sentence
	deadline  time.Time
}

// Assembler reassembles multi-part AIVDM messages. Fragments are keyed
// by channel and sequential message id; stale partials are dropped on
// the next Add. Not safe for concurrent use; each feed goroutine owns
// its own Assembler.
type Assembler struct {
	timeout time.Duration
	pending map[string]*partial
}

// NewAssembler returns an Assembler that abandons incomplete messages
// after timeout (DefaultAssemblyTimeout if zero).
func NewAssembler(timeout time.Duration) *Assembler {
	if timeout <= 0 {
		timeout = DefaultAssemblyTimeout
	}
	return &Assembler{
		timeout: timeout,
		pending: make(map[string]*partial),
	}
}

// Add feeds one fragment in. When the fragment completes a message the
// concatenated armored payload and the final fill bit count are
// returned with done=true. Single-fragment sentences complete
// immediately and never touch the pending map.
func (a *Assembler) Add(s *Sentence, now time.Time) (payload string, fill int, done bool) {
	a.prune(now)

	if s.TotalFragments == 1 {
		return s.Payload, s.FillBits, true
	}

	key := fmt.Sprintf("%s/%s/%d", s.Channel, s.MessageID, s.TotalFragments)
	p := a.pending[key]
	if p == nil {
		p = &partial{fragments: make([]*Sentence, s.TotalFragments)}
		a.pending[key] = p
	}
	p.fragments[s.FragmentNumber-1] = s
	p.deadline = now.Add(a.timeout)

	for _, f := range p.fragments {
		if f == nil {
			return "", 0, false
		}
	}
	delete(a.pending, key)
	for _, f := range p.fragments {
		payload += f.Payload
	}
	return payload, p.fragments[len(p.fragments)-1].FillBits, true
}

// Pending reports how many incomplete messages are buffered.
func (a *Assembler) Pending() int {
	return len(a.pending)
}

func (a *Assembler) prune(now time.Time) {
	for key, p := range a.pending {
		if now.After(p.deadline) {
			delete(a.pending, key)
		}
	}
}
