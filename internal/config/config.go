package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/craftstats/mclogalyzer/internal/classify"
	"github.com/craftstats/mclogalyzer/internal/domain"
)

// sinceLayout is the format accepted by -since.
const sinceLayout = "2006-01-02 15:04:05"

// Relative cutoff windows for -month and -week.
const (
	monthWindow = 30 * 24 * time.Hour
	weekWindow  = 7 * 24 * time.Hour
)

// Config holds one run's configuration: the two positional arguments,
// the optional flags, and logging settings taken from the environment.
type Config struct {
	LogDir string `validate:"required,dir"`
	Output string `validate:"required"`

	Template  string `validate:"omitempty,file"`
	Whitelist string `validate:"omitempty,file"`

	// Cutoff is resolved from -since/-month/-week; zero means no cutoff.
	Cutoff time.Time

	ChatPattern string `validate:"required"`
	ServeAddr   string

	LogLevel    string `validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat   string `validate:"omitempty,oneof=text json"`
	Environment string
}

// Load parses flags and environment into a validated Config.
// A .env file is honored when present but not required.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("mclogalyzer", flag.ContinueOnError)
	template := fs.String("template", "", "custom report template (default: embedded)")
	since := fs.String("since", "", `ignore log entries before this time ("2006-01-02 15:04:05")`)
	month := fs.Bool("month", false, "report on the last 30 days")
	week := fs.Bool("week", false, "report on the last 7 days")
	whitelistPath := fs.String("whitelist", "", "server whitelist file; restrict the report to its names")
	serve := fs.String("serve", "", "serve the generated report on this address after writing it")
	chatPattern := fs.String("chat-pattern", getEnv("CHAT_PATTERN", classify.DefaultChatPattern),
		"regex matching chat lines; the username must be the second capture group")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: mclogalyzer [flags] <logdir> <output.html>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return nil, domain.ErrMissingArgs
	}

	cutoff, err := resolveCutoff(*since, *month, *week, time.Now())
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogDir:      fs.Arg(0),
		Output:      fs.Arg(1),
		Template:    *template,
		Whitelist:   *whitelistPath,
		Cutoff:      cutoff,
		ChatPattern: *chatPattern,
		ServeAddr:   *serve,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveCutoff turns the mutually exclusive cutoff flags into a timestamp.
func resolveCutoff(since string, month, week bool, now time.Time) (time.Time, error) {
	set := 0
	if since != "" {
		set++
	}
	if month {
		set++
	}
	if week {
		set++
	}
	if set > 1 {
		return time.Time{}, domain.ErrConflictingCutoff
	}

	switch {
	case month:
		return now.Add(-monthWindow), nil
	case week:
		return now.Add(-weekWindow), nil
	case since != "":
		t, err := time.ParseInLocation(sinceLayout, since, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q (want %q)", domain.ErrInvalidSince, since, sinceLayout)
		}
		return t, nil
	}
	return time.Time{}, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
