// Command rcbridge-log views and analyzes bridge capture files.
//
// Capture files are written by rcbridge-server when log.protocol_log is set
// (or with the -protocol-log flag).
//
// Usage:
//
//	rcbridge-log <command> [flags] <capture.cbor>
//
// Commands:
//
//	view     View capture file in human-readable format
//	export   Export capture file to JSONL or CSV
//	filter   Filter capture file and write to new file
//	stats    Show statistics about the capture file
//
// Examples:
//
//	# View everything
//	rcbridge-log view capture.cbor
//
//	# View deliveries of one subscription
//	rcbridge-log view -event WifiScannerScan1 capture.cbor
//
//	# View calls of one method
//	rcbridge-log view -method wifiScannerStartScan capture.cbor
//
//	# Keep one session only
//	rcbridge-log filter -session-id 01J... -o session.cbor capture.cbor
//
//	# Show statistics
//	rcbridge-log stats capture.cbor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rcbridge/rcbridge-go/cmd/rcbridge-log/commands"
)

const usage = `rcbridge-log - rcbridge capture file analyzer

Usage:
  rcbridge-log <command> [flags] <capture.cbor>

Commands:
  view     View capture file in human-readable format
  export   Export capture file to JSONL or CSV
  filter   Filter capture file and write to new file
  stats    Show statistics about the capture file

Use "rcbridge-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// newFlagSet creates a flag set whose usage names the subcommand.
func newFlagSet(name, synopsis, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "rcbridge-log %s - %s\n\nUsage:\n  rcbridge-log %s %s\n\nFlags:\n", name, synopsis, name, args)
		fs.PrintDefaults()
	}
	return fs
}

// pathArg parses args and returns the single capture file argument.
func pathArg(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) {
	fs := newFlagSet("view", "View capture file in human-readable format", "[flags] <capture.cbor>")
	layer := fs.String("layer", "", "Filter by layer (transport, rpc, facade)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, state, delivery, error)")
	sessionID := fs.String("session-id", "", "Filter by session ID")
	method := fs.String("method", "", "Filter by RPC method")
	eventName := fs.String("event", "", "Filter deliveries by event name prefix")

	path := pathArg(fs, args)

	filter := commands.ViewFilter{
		SessionID: *sessionID,
		Method:    *method,
		EventName: *eventName,
	}
	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			fail(err)
		}
		filter.Layer = &l
	}
	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fail(err)
		}
		filter.Direction = &d
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export capture file to JSONL or CSV", "[flags] <capture.cbor>")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path := pathArg(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter capture file and write to new file", "[flags] <capture.cbor>")
	output := fs.String("o", "", "Output file (required)")
	connID := fs.String("conn-id", "", "Filter by connection ID")
	sessionID := fs.String("session-id", "", "Filter by session ID")
	method := fs.String("method", "", "Filter by RPC method")
	eventName := fs.String("event", "", "Filter deliveries by event name prefix")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	layer := fs.String("layer", "", "Filter by layer (transport, rpc, facade)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, state, delivery, error)")

	path := pathArg(fs, args)
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, commands.FilterOptions{
		Output:    *output,
		ConnID:    *connID,
		SessionID: *sessionID,
		Method:    *method,
		EventName: *eventName,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Layer:     *layer,
		Direction: *direction,
		Category:  *category,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the capture file", "<capture.cbor>")
	path := pathArg(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
