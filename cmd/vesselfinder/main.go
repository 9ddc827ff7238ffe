package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/xmidt-org/httpaux/roundtrip"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	vesselfinder "github.com/vesselfinder/client-go"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInvalidArgs = 2
)

// IO holds the streams the CLI reads and writes.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultIO returns the process streams.
func DefaultIO() IO {
	return IO{Stdout: os.Stdout, Stderr: os.Stderr}
}

var errUsage = errors.New("usage error")

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, streams IO) int {
	if len(args) > 0 {
		args = args[1:]
	}

	cfg, rest, err := loadConfig(args, streams.Stderr)
	if errors.Is(err, errHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(streams.Stderr, "error: %v\n", err)
		return exitInvalidArgs
	}

	logger := newLogger(cfg.Verbose, streams.Stderr)
	defer logger.Sync()

	if len(rest) == 0 {
		fmt.Fprintln(streams.Stderr, "error: missing command")
		return exitInvalidArgs
	}

	opts := callOptions(cfg)
	if cfg.DryRun {
		return dryRun(ctx, cfg, rest, opts, streams, logger)
	}

	client, err := newClient(cfg, logger, nil)
	if err != nil {
		fmt.Fprintf(streams.Stderr, "error: %v\n", err)
		return exitInvalidArgs
	}

	resp, err := execute(ctx, client, rest, cfg, opts)
	if err != nil {
		return report(err, streams, logger)
	}

	if err := writeBody(streams.Stdout, resp); err != nil {
		fmt.Fprintf(streams.Stderr, "error: %v\n", err)
		return exitFailure
	}

	if cfg.Info {
		info, err := client.LastInfo()
		if err != nil {
			fmt.Fprintf(streams.Stderr, "error: %v\n", err)
			return exitFailure
		}
		enc := json.NewEncoder(streams.Stderr)
		enc.SetIndent("", "  ")
		enc.Encode(info)
	}

	return exitOK
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zap.WarnLevel
	encCfg := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder(encCfg)
	if verbose {
		level = zap.DebugLevel
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core).Named("vesselfinder")
}

// newClient builds the client for cfg. A nil transport uses the default
// one.
func newClient(cfg Config, logger *zap.Logger, transport http.RoundTripper) (*vesselfinder.Client, error) {
	opts := []vesselfinder.Option{
		vesselfinder.WithErrorMode(cfg.ErrorMode),
		vesselfinder.WithLogger(logger),
		vesselfinder.WithSaveLastInfo(cfg.Info),
	}
	if cfg.URL != "" {
		opts = append(opts, vesselfinder.WithBaseURL(cfg.URL))
	}
	if cfg.Timeout > 0 || transport != nil {
		opts = append(opts, vesselfinder.WithHTTPClient(&http.Client{Timeout: cfg.Timeout, Transport: transport}))
	}
	return vesselfinder.New(cfg.Key, opts...)
}

// callOptions converts the generic flags into call options. Command
// specific values (interval for portcalls, locode for expectedarrivals,
// the distance points and list manager vessels) are added by execute.
func callOptions(cfg Config) []vesselfinder.CallOption {
	var opts []vesselfinder.CallOption
	if cfg.Format != "" {
		opts = append(opts, vesselfinder.WithFormat(vesselfinder.Format(cfg.Format)))
	}
	if cfg.IsSet("interval") {
		opts = append(opts, vesselfinder.WithInterval(cfg.Interval))
	}
	if len(cfg.IMO) > 0 {
		opts = append(opts, vesselfinder.WithIMO(cfg.IMO...))
	}
	if len(cfg.MMSI) > 0 {
		opts = append(opts, vesselfinder.WithMMSI(cfg.MMSI...))
	}
	if cfg.Locode != "" {
		opts = append(opts, vesselfinder.WithLocode(cfg.Locode))
	}
	if len(cfg.ExtraData) > 0 {
		types := make([]vesselfinder.ExtraData, len(cfg.ExtraData))
		for i, t := range cfg.ExtraData {
			types[i] = vesselfinder.ExtraData(t)
		}
		opts = append(opts, vesselfinder.WithExtraData(types...))
	}
	if cfg.Event != "" {
		opts = append(opts, vesselfinder.WithEvent(vesselfinder.PortCallEvent(cfg.Event)))
	}
	if cfg.FromDate != "" {
		opts = append(opts, vesselfinder.WithFromDate(cfg.FromDate))
	}
	if cfg.ToDate != "" {
		opts = append(opts, vesselfinder.WithToDate(cfg.ToDate))
	}
	if cfg.IsSet("limit") {
		opts = append(opts, vesselfinder.WithLimit(cfg.Limit))
	}
	if cfg.IsSet("sat") {
		opts = append(opts, vesselfinder.WithSat(cfg.Sat))
	}
	if cfg.Gateways != "" {
		opts = append(opts, vesselfinder.WithGateways(cfg.Gateways))
	}
	if cfg.IsSet("eca") {
		opts = append(opts, vesselfinder.WithECA(cfg.ECA))
	}
	if cfg.IsSet("epsg3857") {
		opts = append(opts, vesselfinder.WithEPSG3857(cfg.EPSG3857))
	}
	return opts
}

func execute(ctx context.Context, client *vesselfinder.Client, args []string, cfg Config, opts []vesselfinder.CallOption) (*vesselfinder.Response, error) {
	cmd, args := args[0], args[1:]

	switch cmd {
	case "status":
		return client.Status(ctx, opts...)
	case "vessels":
		// imo and mmsi already travel in opts.
		return client.Vessels(ctx, nil, nil, opts...)
	case "vesselslist":
		return client.VesselsList(ctx, opts...)
	case "livedata":
		return client.LiveData(ctx, opts...)
	case "masterdata":
		return client.MasterData(ctx, nil, opts...)
	case "portcalls":
		if !cfg.IsSet("interval") {
			return nil, fmt.Errorf("%w: portcalls requires --interval", errUsage)
		}
		return client.PortCalls(ctx, cfg.Interval, opts...)
	case "expectedarrivals":
		locode := cfg.Locode
		if len(args) > 0 {
			locode = args[0]
		}
		if locode == "" {
			return nil, fmt.Errorf("%w: expectedarrivals requires a locode", errUsage)
		}
		return client.ExpectedArrivals(ctx, locode, opts...)
	case "distance":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: distance requires <from> <to>", errUsage)
		}
		return client.Distance(ctx, args[0], args[1], opts...)
	case "listmanager":
		action := "get"
		if len(args) > 0 {
			action = args[0]
		}
		switch action {
		case "get":
			return client.GetListManager(ctx, opts...)
		case "add":
			return client.ListManagerAdd(ctx, nil, nil, opts...)
		case "replace":
			return client.ListManagerReplace(ctx, nil, nil, opts...)
		case "delete":
			return client.ListManagerDelete(ctx, nil, nil, opts...)
		}
		return nil, fmt.Errorf("%w: unknown listmanager action %q", errUsage, action)
	}

	return nil, fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

// errDryRun stops a dry run at the transport, after every client-side
// check of the command has passed.
var errDryRun = errors.New("dry run")

// dryRun reports every invalid option at once, then runs the command
// against a transport that never sends so its own preconditions apply too.
func dryRun(ctx context.Context, cfg Config, args []string, opts []vesselfinder.CallOption, streams IO, logger *zap.Logger) int {
	if err := vesselfinder.Validate(opts...); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(streams.Stderr, "invalid: %v\n", e)
		}
		return exitInvalidArgs
	}

	if cfg.Key == "" {
		cfg.Key = "dry-run"
	}
	client, err := newClient(cfg, logger, roundtrip.Func(func(*http.Request) (*http.Response, error) {
		return nil, errDryRun
	}))
	if err != nil {
		fmt.Fprintf(streams.Stderr, "error: %v\n", err)
		return exitInvalidArgs
	}

	_, err = execute(ctx, client, args, cfg, opts)
	if err != nil && !errors.Is(err, errDryRun) {
		fmt.Fprintf(streams.Stderr, "invalid: %v\n", err)
		if errors.Is(err, errUsage) || errors.Is(err, vesselfinder.ErrInvalidArguments) {
			return exitInvalidArgs
		}
		return exitFailure
	}

	fmt.Fprintln(streams.Stdout, "ok")
	return exitOK
}

func report(err error, streams IO, logger *zap.Logger) int {
	fmt.Fprintf(streams.Stderr, "error: %v\n", err)

	switch {
	case errors.Is(err, errUsage), errors.Is(err, vesselfinder.ErrInvalidArguments):
		return exitInvalidArgs
	case errors.Is(err, vesselfinder.ErrRequestError):
		logger.Warn("request rejected", zap.Error(err))
	default:
		logger.Error("request failed", zap.Error(err))
	}
	return exitFailure
}

func writeBody(w io.Writer, resp *vesselfinder.Response) error {
	if raw, ok := resp.Body.(string); ok {
		_, err := io.WriteString(w, strings.TrimRight(raw, "\n")+"\n")
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp.Body)
}
