// Command-line entry point for ais_watch.
//
// Two modes:
//   extract - offline: read NMEA lines, decode the binary payloads and
//             write JSON (one object per decode attempt).
//   serve   - online: ingest from UDP and/or NATS, store decodes and
//             expose the REST/websocket API.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ais_watch/internal/decoders"
	"ais_watch/internal/pipeline"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "ais_watch - AIS binary message decoder. Commands:")
	fmt.Fprintln(w, "  extract   - decode NMEA lines from a file or stdin, output JSON")
	fmt.Fprintln(w, "  serve     - ingest live feeds, store decodes and serve the API")
	fmt.Fprintln(w, "  supported - list the supported (dac, fid) pairs")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ais_watch extract -input sentences.nmea [-output out.json] [-pretty] [-all] [-stats]")
	fmt.Fprintln(w, "  ais_watch serve [-udp :10110] [-nats nats://localhost:4222 -subject ais.raw] [-db ais.db] [-port 8080]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - Input is raw NMEA: one !AIVDM/!AIVDO sentence per line.")
	fmt.Fprintln(w, "  - Only message types 6, 8, 25 and 26 carry decodable binary payloads.")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "extract":
		runExtract(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "supported":
		runSupported()
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runSupported() {
	for _, e := range decoders.Supported() {
		tag := ""
		if e.Deprecated {
			tag = " (deprecated)"
		}
		fmt.Printf("%4d/%-2d  %s%s\n", e.DAC, e.FID, e.Name, tag)
	}
}

func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	inPath := fs.String("input", "", "Input NMEA file (default: stdin)")
	outPath := fs.String("output", "", "Output JSON file (default: stdout)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	includeAll := fs.Bool("all", false, "Include messages whose payload failed to decode")
	showStats := fs.Bool("stats", false, "Print basic counters to stderr")
	_ = fs.Parse(args)

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	out := make([]pipeline.Output, 0, 1024)
	proc := pipeline.New(pipeline.WithEmit(func(o pipeline.Output) {
		if o.Decoded == nil && !*includeAll {
			return
		}
		out = append(out, o)
	}))

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		proc.HandleLine(line, time.Now())
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Input read error: %v\n", err)
		os.Exit(1)
	}

	var wout io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		wout = f
	}

	enc, err := marshalJSON(out, *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "JSON encode error: %v\n", err)
		os.Exit(1)
	}
	_, _ = wout.Write(enc)
	if wout == os.Stdout {
		_, _ = wout.Write([]byte("\n"))
	}

	if *showStats {
		st := proc.Snapshot()
		fmt.Fprintf(os.Stderr,
			"stats: lines=%d bad_sentence=%d fragments=%d non_binary=%d unstructured=%d decoded=%d failed=%d\n",
			st.Lines, st.BadSentence, st.Fragments, st.NonBinary, st.Unstructured, st.Decoded, st.Failed,
		)
	}
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
