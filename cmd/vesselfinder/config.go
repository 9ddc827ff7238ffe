package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix is the prefix of environment variables, e.g. VESSELFINDER_KEY.
const envPrefix = "VESSELFINDER"

// Config is the CLI configuration, merged from flags, environment
// variables, an optional .env file and an optional config file, in that
// order of precedence.
type Config struct {
	Key       string        `mapstructure:"key"`
	URL       string        `mapstructure:"url"`
	Format    string        `mapstructure:"format"`
	Interval  int           `mapstructure:"interval"`
	IMO       []int         `mapstructure:"imo"`
	MMSI      []int         `mapstructure:"mmsi"`
	Locode    string        `mapstructure:"locode"`
	ExtraData []string      `mapstructure:"extradata"`
	Event     string        `mapstructure:"event"`
	FromDate  string        `mapstructure:"fromdate"`
	ToDate    string        `mapstructure:"todate"`
	Limit     int           `mapstructure:"limit"`
	Sat       bool          `mapstructure:"sat"`
	Gateways  string        `mapstructure:"gateways"`
	ECA       bool          `mapstructure:"eca"`
	EPSG3857  bool          `mapstructure:"epsg3857"`
	ErrorMode bool          `mapstructure:"errormode"`
	Timeout   time.Duration `mapstructure:"timeout"`
	DryRun    bool          `mapstructure:"dry-run"`
	Info      bool          `mapstructure:"info"`
	Verbose   bool          `mapstructure:"verbose"`

	// set reports which flags or keys were given explicitly, so zero
	// values such as interval=0 can be told apart from absent ones.
	set map[string]bool
}

// IsSet reports whether key was configured.
func (c Config) IsSet(key string) bool {
	return c.set[key]
}

var errHelp = errors.New("help requested")

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("vesselfinder", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: vesselfinder [flags] <command> [args]\n\n")
		fmt.Fprintf(stderr, "commands:\n")
		fmt.Fprintf(stderr, "  status | vessels | vesselslist | livedata | masterdata\n")
		fmt.Fprintf(stderr, "  portcalls | expectedarrivals [locode] | distance <from> <to>\n")
		fmt.Fprintf(stderr, "  listmanager [get|add|replace|delete]\n\nflags:\n")
		fs.PrintDefaults()
	}

	fs.String("config", "", "path to a config file (yaml, json or toml)")
	fs.String("env-file", ".env", "path to a .env file, ignored if missing")
	fs.String("key", "", "API key (env VESSELFINDER_KEY)")
	fs.String("url", "", "API base URL")
	fs.String("format", "", "response format: json or xml")
	fs.Int("interval", 0, "interval in minutes")
	fs.StringSlice("imo", nil, "IMO numbers")
	fs.StringSlice("mmsi", nil, "MMSI numbers")
	fs.String("locode", "", "port UN/LOCODE")
	fs.StringSlice("extradata", nil, "extra data: ais, voyage, master")
	fs.String("event", "", "port call event: arrival or departure")
	fs.String("fromdate", "", `start date, "YYYY-MM-DD HH:MM:SS"`)
	fs.String("todate", "", `end date, "YYYY-MM-DD HH:MM:SS"`)
	fs.Int("limit", 0, "maximum number of records")
	fs.Bool("sat", false, "include satellite positions")
	fs.String("gateways", "", "distance: allowed gateways")
	fs.Bool("eca", false, "distance: avoid emission control areas")
	fs.Bool("epsg3857", false, "distance: EPSG:3857 coordinates")
	fs.Bool("errormode", false, "ask the server to report errors with HTTP 409")
	fs.Duration("timeout", 30*time.Second, "HTTP timeout")
	fs.Bool("dry-run", false, "validate parameters without calling the API")
	fs.Bool("info", false, "print response metadata to stderr")
	fs.BoolP("verbose", "v", false, "debug logging")
	return fs
}

// loadConfig parses args (without the program name) and returns the
// configuration and the remaining positional arguments.
func loadConfig(args []string, stderr io.Writer) (Config, []string, error) {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, nil, errHelp
		}
		return Config{}, nil, err
	}

	envFile, _ := fs.GetString("env-file")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.set = make(map[string]bool)
	for _, key := range []string{"interval", "limit", "sat", "eca", "epsg3857"} {
		if fs.Changed(key) || v.InConfig(key) || os.Getenv(envPrefix+"_"+strings.ToUpper(key)) != "" {
			cfg.set[key] = true
		}
	}

	return cfg, fs.Args(), nil
}
