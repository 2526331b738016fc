// Package ais provides the thin sentence layer between raw NMEA input
// and the binary payload decoders: AIVDM parsing, multi-part assembly
// and extraction of the DAC/FID-tagged payload from message types 6, 8,
// 25 and 26.
//
// This is deliberately not a general AIS decoder. Positions, static
// data and the other message types are left to the upstream receiver;
// only enough of the frame is peeled here to route binary payloads.
package ais

import (
	"fmt"
	"strconv"
	"strings"
)

// Sentence is one parsed !AIVDM/!AIVDO fragment.
type Sentence struct {
	TotalFragments int    // fragment count for this message
	FragmentNumber int    // 1-based index of this fragment
	MessageID      string // sequential id linking fragments, may be empty
	Channel        string // radio channel, "A" or "B"
	Payload        string // six-bit armored payload
	FillBits       int    // padding bits in the final payload character
}

// ParseSentence parses and checksums a single AIVDM/AIVDO line.
// Leading line noise before '!' is tolerated (receivers often prepend
// tag blocks or timestamps).
func ParseSentence(line string) (*Sentence, error) {
	line = strings.TrimSpace(line)
	bang := strings.IndexByte(line, '!')
	if bang < 0 {
		return nil, fmt.Errorf("no NMEA start delimiter in %q", line)
	}
	line = line[bang:]

	body := line[1:]
	if star := strings.IndexByte(body, '*'); star >= 0 {
		want, err := strconv.ParseUint(body[star+1:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("bad checksum field in %q", line)
		}
		var sum byte
		for i := 0; i < star; i++ {
			sum ^= body[i]
		}
		if sum != byte(want) {
			return nil, fmt.Errorf("checksum mismatch in %q: got %02X want %02X", line, sum, want)
		}
		body = body[:star]
	}

	fields := strings.Split(body, ",")
	if len(fields) < 7 {
		return nil, fmt.Errorf("short sentence %q: %d fields", line, len(fields))
	}
	tag := fields[0]
	if !strings.HasSuffix(tag, "VDM") && !strings.HasSuffix(tag, "VDO") {
		return nil, fmt.Errorf("not a VDM/VDO sentence: %q", tag)
	}

	total, err := strconv.Atoi(fields[1])
	if err != nil || total < 1 {
		return nil, fmt.Errorf("bad fragment count %q", fields[1])
	}
	num, err := strconv.Atoi(fields[2])
	if err != nil || num < 1 || num > total {
		return nil, fmt.Errorf("bad fragment number %q", fields[2])
	}
	fill := 0
	if fields[6] != "" {
		fill, err = strconv.Atoi(fields[6])
		if err != nil || fill < 0 || fill > 5 {
			return nil, fmt.Errorf("bad fill bits %q", fields[6])
		}
	}

	return &Sentence{
		TotalFragments: total,
		FragmentNumber: num,
		MessageID:      fields[3],
		Channel:        fields[4],
		Payload:        fields[5],
		FillBits:       fill,
	}, nil
}
