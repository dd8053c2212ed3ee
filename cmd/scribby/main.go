// Package main provides the Scribby clinician note assistant.
// It runs as a terminal editor with an action menu by default, and as a
// one-shot command when an action, intake file or key is given on the
// command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/entrhq/scribby/pkg/config"
	"github.com/entrhq/scribby/pkg/executor/cli"
	"github.com/entrhq/scribby/pkg/executor/tui"
	"github.com/entrhq/scribby/pkg/llm/tokenizer"
	"github.com/entrhq/scribby/pkg/logging"
	"github.com/entrhq/scribby/pkg/pipeline"
	"github.com/entrhq/scribby/pkg/render"
)

const version = "0.1.0"

// Config holds the command line configuration
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	HomeDir     string
	Action      string
	Text        string
	File        string
	Intake      string
	SetKey      string
	Format      string
	Width       int
	Timeout     time.Duration
	ShowLast    bool
	Print       bool
	Copy        bool
	List        bool
	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("Scribby v%s\n", version)
		return
	}

	if err := cfg.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg)
	stop()

	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError writes err unless it is a failed result, which the executor
// has already written.
func reportError(w io.Writer, err error) {
	var failure *cli.FailureError
	if errors.As(err, &failure) {
		return
	}
	fmt.Fprintf(w, "scribby: %v\n", err)
}

// parseFlags parses command line flags and environment variables
func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.APIKey, "api-key", os.Getenv("OPENAI_API_KEY"), "OpenAI API key for this run (or set OPENAI_API_KEY env var)")
	flag.StringVar(&cfg.BaseURL, "base-url", "", "OpenAI API base URL (or set OPENAI_BASE_URL env var)")
	flag.StringVar(&cfg.Model, "model", "", "Model to use (default "+config.DefaultModel+")")
	flag.StringVar(&cfg.HomeDir, "home", "", "Settings directory (or set "+config.HomeEnv+", default ~/.scribby)")
	flag.StringVar(&cfg.Action, "action", "", "Run one action on -text, -file or stdin and print the result")
	flag.StringVar(&cfg.Text, "text", "", "Note text for -action, or initial editor text")
	flag.StringVar(&cfg.File, "file", "", "Read note text from a file (- for stdin)")
	flag.StringVar(&cfg.Intake, "intake", "", "Generate a full SOAP note from intake answers (YAML, - for stdin)")
	flag.StringVar(&cfg.SetKey, "set-key", "", "Save the API key and exit")
	flag.StringVar(&cfg.Format, "format", string(cli.FormatText), "Output format: text, markdown, html or terminal")
	flag.IntVar(&cfg.Width, "width", 80, "Wrap width for -format terminal")
	flag.DurationVar(&cfg.Timeout, "timeout", 0, "Request timeout (default none)")
	flag.BoolVar(&cfg.ShowLast, "show-last", false, "Reopen the last result")
	flag.BoolVar(&cfg.Print, "print", false, "Print results instead of opening the editor")
	flag.BoolVar(&cfg.Copy, "copy", false, "Also copy the result to the clipboard")
	flag.BoolVar(&cfg.List, "list", false, "List the available actions and exit")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Scribby - Urology smart note assistant\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scribby [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY     API key, overrides the saved key\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_BASE_URL    OpenAI API base URL (for compatible APIs)\n")
		fmt.Fprintf(os.Stderr, "  %-18s Settings directory\n", config.HomeEnv)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  scribby                                   # Open the editor\n")
		fmt.Fprintf(os.Stderr, "  scribby -set-key sk-...\n")
		fmt.Fprintf(os.Stderr, "  scribby -action summarize -file note.txt\n")
		fmt.Fprintf(os.Stderr, "  pbpaste | scribby -action create-soap-note -format markdown\n")
		fmt.Fprintf(os.Stderr, "  scribby -intake answers.yaml -copy\n")
		fmt.Fprintf(os.Stderr, "  scribby -show-last -print -format html\n")
	}

	flag.Parse()
	return cfg
}

// validate checks that the flags can be combined
func (c *Config) validate() error {
	if _, err := cli.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Text != "" && c.File != "" {
		return errors.New("use either -text or -file, not both")
	}
	if c.Action != "" && c.Intake != "" {
		return errors.New("use either -action or -intake, not both")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// oneShot reports whether the run should print instead of opening the editor.
func (c *Config) oneShot() bool {
	return c.Action != "" || c.Intake != "" || c.SetKey != "" || c.List || c.Print
}

func run(ctx context.Context, cfg *Config) error {
	if cfg.HomeDir != "" {
		if err := os.Setenv(config.HomeEnv, cfg.HomeDir); err != nil {
			return err
		}
	}

	logger, err := logging.NewLogger("scribby")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger = logging.Discard()
	}
	defer logger.Close()
	logger.Infof("Starting scribby v%s", version)

	tok, err := tokenizer.New()
	if err != nil {
		logger.Warnf("Token counting falls back to estimates: %v", err)
	}

	dispatcher, surface, err := newPipeline(cfg, logger, tok)
	if err != nil {
		return err
	}

	if cfg.oneShot() {
		return runOneShot(ctx, cfg, dispatcher, surface, os.Stdout, os.Stderr)
	}
	return runTUI(ctx, cfg, dispatcher, surface, logger)
}

// newPipeline loads the settings under cfg.HomeDir and wires the dispatcher
// and result surface.
// A nil tok counts tokens by estimate.
func newPipeline(cfg *Config, logger *logging.Logger, tok *tokenizer.Tokenizer) (*pipeline.Dispatcher, *render.Surface, error) {
	settings, err := config.Open(cfg.HomeDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	overrides := config.Overrides{Model: cfg.Model, BaseURL: cfg.BaseURL}
	if cfg.Timeout > 0 {
		overrides.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	transport := pipeline.NewTransport(
		config.NewProviderFactory(settings, overrides),
		pipeline.WithTransportLogger(logger),
		pipeline.WithTokenizer(tok),
	)

	cache := settings.ResultCache()
	dispatcher, err := pipeline.NewDispatcher(
		settings.Credentials(strings.TrimSpace(cfg.APIKey)),
		cache,
		transport,
		pipeline.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return dispatcher, render.NewSurface(cache), nil
}

func runTUI(ctx context.Context, cfg *Config, d *pipeline.Dispatcher, surface *render.Surface, logger *logging.Logger) error {
	text, err := readText(cfg, false)
	if err != nil {
		return err
	}

	opts := []tui.Option{tui.WithLogger(logger), tui.WithInitialText(text)}
	if cfg.ShowLast {
		opts = append(opts, tui.WithRestore())
	}
	return tui.NewExecutor(d, surface, opts...).Run(ctx)
}

func runOneShot(ctx context.Context, cfg *Config, d *pipeline.Dispatcher, surface *render.Surface, stdout, stderr io.Writer) error {
	format, _ := cli.ParseFormat(cfg.Format)
	executor := cli.NewExecutor(d, surface,
		cli.WithWriter(stdout),
		cli.WithErrWriter(stderr),
		cli.WithFormat(format),
		cli.WithWidth(cfg.Width),
		cli.WithCopy(cfg.Copy),
	)

	switch {
	case cfg.List:
		executor.ListActions()
		return nil
	case cfg.SetKey != "":
		return executor.SetKey(cfg.SetKey)
	case cfg.ShowLast:
		return executor.ShowLast()
	case cfg.Intake != "":
		r, closeFn, err := openInput(cfg.Intake)
		if err != nil {
			return err
		}
		defer closeFn()
		return executor.RunIntake(ctx, r)
	case cfg.Action == "":
		return errors.New("-print needs -action, -intake or -show-last")
	}

	text, err := readText(cfg, true)
	if err != nil {
		return err
	}
	return executor.RunAction(ctx, cfg.Action, text)
}

// readText returns the note text from -text, -file, or stdin when it is
// piped and fromStdin is set.
func readText(cfg *Config, fromStdin bool) (string, error) {
	switch {
	case cfg.Text != "":
		return cfg.Text, nil
	case cfg.File != "":
		r, closeFn, err := openInput(cfg.File)
		if err != nil {
			return "", err
		}
		defer closeFn()
		return readAll(r)
	case fromStdin && stdinIsPiped():
		return readAll(os.Stdin)
	}
	return "", nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

func stdinIsPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
