// Package interactive provides the interactive command-line interface
// for rcbridge-cli.
package interactive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rcbridge/rcbridge-go/pkg/a2dp"
	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/facade"
	"github.com/rcbridge/rcbridge-go/pkg/version"
	"github.com/rcbridge/rcbridge-go/pkg/wifi"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// Caller is the part of *rpc.Client the shell uses.
type Caller interface {
	Call(ctx context.Context, method string, params wire.Params, result any) error
	SetNotificationHandler(fn func(event.Event))
}

// errQuit ends the command loop.
var errQuit = errors.New("quit")

// Shell runs commands against a bridge.
type Shell struct {
	client Caller
	out    io.Writer
}

// NewShell creates a shell writing to out.
func NewShell(client Caller, out io.Writer) *Shell {
	return &Shell{client: client, out: out}
}

// Run reads commands with readline until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rcbridge> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		if err := s.Exec(ctx, line); errors.Is(err, errQuit) {
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
	}
}

// Exec runs one command line. Command failures are printed, not returned.
func (s *Shell) Exec(ctx context.Context, line string) error {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "call":
		err = s.cmdCall(ctx, line)
	case "methods":
		err = s.cmdMethods(ctx)
	case "describe":
		err = s.cmdDescribe(ctx, args)
	case "scan":
		err = s.cmdScan(ctx, args)
	case "stop-scan":
		err = s.cmdStopHandle(ctx, facade.MethodStopScan, args)
	case "scans":
		err = s.cmdScans(ctx)
	case "results":
		err = s.cmdResults(ctx, args)
	case "track-change":
		err = s.cmdTrackChange(ctx, args)
	case "stop-change":
		err = s.cmdStopHandle(ctx, facade.MethodStopTrackingChange, args)
	case "track-bssids":
		err = s.cmdTrackBssids(ctx, args)
	case "stop-bssids":
		err = s.cmdStopHandle(ctx, facade.MethodStopTrackingBssids, args)
	case "shutdown":
		err = s.client.Call(ctx, facade.MethodShutdown, nil, nil)
		if err == nil {
			fmt.Fprintln(s.out, "All subscriptions stopped")
		}
	case "events", "poll":
		err = s.cmdPoll(ctx, args)
	case "wait":
		err = s.cmdWait(ctx, args)
	case "clear":
		err = s.cmdClear(ctx)
	case "stream":
		err = s.cmdStream(ctx, args)
	case "power-test":
		err = s.cmdPowerTest(ctx, args)
	case "power-status":
		err = s.cmdPowerStatus(ctx)
	case "quit", "exit", "q":
		return errQuit
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return nil
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
rcbridge Commands:
  Scanning:
    scan <periodMs> [reportEvents] [band]         - Start a background scan
    stop-scan <handle>                            - Stop a scan
    scans                                         - List scan handles
    results <handle>                              - Show cached scan results
    track-change <minBreach> <bssid rssi freq>... - Track wifi changes
    stop-change <handle>                          - Stop change tracking
    track-bssids <lostThreshold> <bssid lo hi>... - Track bssids
    stop-bssids <handle>                          - Stop bssid tracking
    shutdown                                      - Stop all subscriptions

  Events:
    events [n]                                    - Poll queued events
    wait [name] [timeoutMs]                       - Wait for an event
    clear                                         - Drop queued events
    stream on|off                                 - Push events as they happen

  Power test:
    power-test Key=Value...                       - Start an A2DP power test
    power-status                                  - Show power test status

  General:
    call <method> [json-params]                   - Call any method
    methods                                       - List methods
    describe <method>                             - Describe a method
    help                                          - Show this help
    quit                                          - Exit

  Specs are comma separated, e.g.:
    track-bssids 3 aa:bb:cc:dd:ee:01,-80,-40`)
}

func completer() *readline.PrefixCompleter {
	names := []string{
		"scan", "stop-scan", "scans", "results", "track-change", "stop-change",
		"track-bssids", "stop-bssids", "shutdown", "events", "wait", "clear",
		"power-test", "power-status", "call", "methods", "describe", "help", "quit",
	}
	items := make([]readline.PrefixCompleterInterface, 0, len(names)+1)
	for _, n := range names {
		items = append(items, readline.PcItem(n))
	}
	items = append(items, readline.PcItem("stream", readline.PcItem("on"), readline.PcItem("off")))
	return readline.NewPrefixCompleter(items...)
}

// cmdCall passes everything after the method name as a JSON object.
func (s *Shell) cmdCall(ctx context.Context, line string) error {
	rest := strings.TrimSpace(line)[len("call"):]
	rest = strings.TrimSpace(rest)
	method, raw, _ := strings.Cut(rest, " ")
	if method == "" {
		return errors.New("usage: call <method> [json-params]")
	}

	var params wire.Params
	if raw = strings.TrimSpace(raw); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return fmt.Errorf("params: %w", err)
		}
	}

	var result any
	if err := s.client.Call(ctx, method, params, &result); err != nil {
		return err
	}
	s.printJSON(result)
	return nil
}

func (s *Shell) cmdMethods(ctx context.Context) error {
	var methods []string
	if err := s.client.Call(ctx, facade.MethodListMethods, nil, &methods); err != nil {
		return err
	}
	for _, m := range methods {
		fmt.Fprintf(s.out, "  %s\n", m)
	}
	return nil
}

func (s *Shell) cmdDescribe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: describe <method>")
	}
	var spec version.MethodSpec
	if err := s.client.Call(ctx, facade.MethodDescribe, wire.Params{"method": args[0]}, &spec); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s (%s)\n", spec.Name, spec.Facade)
	if spec.Description != "" {
		fmt.Fprintf(s.out, "  %s\n", spec.Description)
	}
	for _, p := range spec.Params {
		req := ""
		if p.Required {
			req = " (required)"
		}
		fmt.Fprintf(s.out, "  %s: %s%s\n", p.Name, p.Type, req)
	}
	if spec.Result != "" {
		fmt.Fprintf(s.out, "  -> %s\n", spec.Result)
	}
	return nil
}

func (s *Shell) cmdScan(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return errors.New("usage: scan <periodMs> [reportEvents] [band]")
	}
	nums, err := atois(args)
	if err != nil {
		return err
	}
	settings := map[string]any{"periodInMs": nums[0], "reportEvents": 1}
	if len(nums) > 1 {
		settings["reportEvents"] = nums[1]
	}
	if len(nums) > 2 {
		settings["band"] = nums[2]
	}

	var handle int
	if err := s.client.Call(ctx, facade.MethodStartScan, wire.Params{"settings": settings}, &handle); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Scan started: handle %d\n", handle)
	return nil
}

func (s *Shell) cmdStopHandle(ctx context.Context, method string, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: <command> <handle>")
	}
	h, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid handle %q", args[0])
	}
	if err := s.client.Call(ctx, method, wire.Params{"handle": h}, nil); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Stopped %d\n", h)
	return nil
}

func (s *Shell) cmdScans(ctx context.Context) error {
	var handles []int
	if err := s.client.Call(ctx, facade.MethodListScans, nil, &handles); err != nil {
		return err
	}
	if len(handles) == 0 {
		fmt.Fprintln(s.out, "No active scans")
		return nil
	}
	fmt.Fprintf(s.out, "Active scans: %v\n", handles)
	return nil
}

func (s *Shell) cmdResults(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: results <handle>")
	}
	h, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid handle %q", args[0])
	}
	var results []wifi.ScanResult
	if err := s.client.Call(ctx, facade.MethodGetScanResults, wire.Params{"handle": h}, &results); err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(s.out, "No results yet")
		return nil
	}
	fmt.Fprintf(s.out, "%-18s %-24s %6s %6s\n", "BSSID", "SSID", "LEVEL", "FREQ")
	for _, r := range results {
		fmt.Fprintf(s.out, "%-18s %-24s %6d %6d\n", r.BSSID, r.SSID, r.Level, r.Frequency)
	}
	return nil
}

// specs turns "a,b,c" arguments into "a b c" spec strings.
func specs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ReplaceAll(a, ",", " ")
	}
	return out
}

func (s *Shell) cmdTrackChange(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: track-change <minBreach> <bssid,rssi,freq>...")
	}
	minBreach, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid minBreach %q", args[0])
	}
	params := wire.Params{
		"bssidSpecs":               specs(args[1:]),
		"rssiSS":                   3,
		"lostApSS":                 3,
		"unchangedSS":              3,
		"minApsBreachingThreshold": minBreach,
		"periodInMs":               5000,
	}
	var handle int
	if err := s.client.Call(ctx, facade.MethodStartTrackingChange, params, &handle); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Change tracking started: handle %d\n", handle)
	return nil
}

func (s *Shell) cmdTrackBssids(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: track-bssids <lostThreshold> <bssid,lo,hi>...")
	}
	threshold, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid lostThreshold %q", args[0])
	}
	params := wire.Params{"bssidSpecs": specs(args[1:]), "apLostThreshold": threshold}
	var handle int
	if err := s.client.Call(ctx, facade.MethodStartTrackingBssids, params, &handle); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Bssid tracking started: handle %d\n", handle)
	return nil
}

func (s *Shell) cmdPoll(ctx context.Context, args []string) error {
	params := wire.Params{}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[0])
		}
		params["n"] = n
	}
	var events []event.Event
	if err := s.client.Call(ctx, facade.MethodEventPoll, params, &events); err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(s.out, "No events")
	}
	for _, ev := range events {
		s.printEvent(ev)
	}
	return nil
}

func (s *Shell) cmdWait(ctx context.Context, args []string) error {
	method := facade.MethodEventWait
	params := wire.Params{}
	for _, a := range args {
		if ms, err := strconv.Atoi(a); err == nil {
			params["timeoutMs"] = ms
			continue
		}
		method = facade.MethodEventWaitAndGet
		params["name"] = a
	}

	var ev event.Event
	if err := s.client.Call(ctx, method, params, &ev); err != nil {
		return err
	}
	s.printEvent(ev)
	return nil
}

func (s *Shell) cmdClear(ctx context.Context) error {
	var n int
	if err := s.client.Call(ctx, facade.MethodEventClearBuffer, nil, &n); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Cleared %d events\n", n)
	return nil
}

func (s *Shell) cmdStream(ctx context.Context, args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return errors.New("usage: stream on|off")
	}
	if args[0] == "off" {
		s.client.SetNotificationHandler(nil)
		return s.client.Call(ctx, facade.MethodEventStreamStop, nil, nil)
	}
	s.client.SetNotificationHandler(func(ev event.Event) {
		fmt.Fprint(s.out, "<< ")
		s.printEvent(ev)
	})
	return s.client.Call(ctx, facade.MethodEventStreamStart, nil, nil)
}

// cmdPowerTest converts Key=Value arguments to intent extras. Numbers become
// integers and true/false become booleans.
func (s *Shell) cmdPowerTest(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: power-test CodecType=0 SampleRate=1 BitsPerSample=1 StartTime=5 PlayTime=30 MusicURL=file:///music.mp3")
	}
	extras := make(map[string]any, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return fmt.Errorf("invalid extra %q", a)
		}
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			extras[k] = n
		} else if b, err := strconv.ParseBool(v); err == nil {
			extras[k] = b
		} else {
			extras[k] = v
		}
	}

	var status a2dp.Status
	if err := s.client.Call(ctx, facade.MethodPowerTestStart, wire.Params{"extras": extras}, &status); err != nil {
		return err
	}
	s.printStatus(status)
	return nil
}

func (s *Shell) cmdPowerStatus(ctx context.Context) error {
	var status a2dp.Status
	if err := s.client.Call(ctx, facade.MethodPowerTestStatus, nil, &status); err != nil {
		return err
	}
	s.printStatus(status)
	return nil
}

func (s *Shell) printStatus(st a2dp.Status) {
	fmt.Fprintf(s.out, "Phase: %s", st.Phase)
	if st.TotalAlarms > 0 {
		fmt.Fprintf(s.out, " (alarm %d/%d", st.Alarm, st.TotalAlarms)
		if st.NextAction != "" {
			fmt.Fprintf(s.out, ", next %s", st.NextAction)
		}
		fmt.Fprint(s.out, ")")
	}
	fmt.Fprintln(s.out)
	if st.Error != "" {
		fmt.Fprintf(s.out, "Error: %s\n", st.Error)
	}
}

func (s *Shell) printEvent(ev event.Event) {
	ts := ev.Timestamp.Format("15:04:05")
	fmt.Fprintf(s.out, "%s %s", ts, ev.Name)
	if len(ev.Data) > 0 {
		if data, err := json.Marshal(ev.Data); err == nil {
			fmt.Fprintf(s.out, " %s", data)
		}
	}
	fmt.Fprintln(s.out)
}

func (s *Shell) printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(s.out, "%v\n", v)
		return
	}
	fmt.Fprintln(s.out, string(data))
}

func atois(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = n
	}
	return out, nil
}
