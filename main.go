package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"readme_genie/collector"
	"readme_genie/config"
	"readme_genie/generator"
	"readme_genie/metrics"
	"readme_genie/publisher"
	"readme_genie/review"
)

var version = "dev"

var (
	headline = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C678DD"))
	info     = lipgloss.NewStyle().Foreground(lipgloss.Color("#56B6C2"))
	success  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379"))
	warning  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	failure  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
)

// CLI is the flag surface of readme-genie.
type CLI struct {
	Auto        bool             `help:"Run full AI generation + review."`
	Style       string           `help:"Set the AI personality (e.g., goddess, quirky, zen)."`
	Styles      bool             `help:"List all available styles."`
	Output      string           `short:"o" help:"Specify output file path (default README.md)."`
	Yes         bool             `help:"Skip the interactive review and accept the draft."`
	Dir         string           `help:"Project directory to document." default:"." type:"existingdir"`
	Config      string           `help:"Path to a YAML config file (default <dir>/.readme-genie.yaml)."`
	Timeout     time.Duration    `help:"Per-provider call timeout (default 30s)."`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this file after the run."`
	Debug       bool             `help:"Enable debug logging."`
	Version     kong.VersionFlag `short:"v" help:"Show version information."`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code so deferred cleanup runs before exit.
func realMain() int {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("readme-genie"),
		kong.Description("Generate a README for the current project with AI, then review it section by section."),
		kong.Vars{"version": "readme-genie " + version},
		kong.UsageOnError(),
	)

	if cli.Styles {
		showStyles(os.Stdout)
		return 0
	}
	if !cli.Auto {
		fmt.Println(warning.Render("⚠️  Please run with --auto for AI generation."))
		_ = kctx.PrintUsage(false)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cli); err != nil {
		slog.Error("readme-genie failed", "error", err)
		fmt.Fprintln(os.Stderr, failure.Render("🔥 An error occurred: "+err.Error()))
		return 1
	}
	return 0
}

func run(ctx context.Context, cli CLI) error {
	cfg, err := config.Load(cli.Dir, cli.Config, nil)
	if err != nil {
		return err
	}
	applyFlags(cfg, cli)

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cli.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
		defer func() {
			if err := prom.WriteTextfile(cli.MetricsFile); err != nil {
				slog.Warn("failed to write metrics file", "path", cli.MetricsFile, "error", err)
			}
		}()
	}

	term := review.NewTerminal(os.Stdin, os.Stdout, cfg.Editor)
	if !cfg.AutoApprove {
		if err := config.EnsureCredential(ctx, cfg, term.AskSecret); err != nil {
			return err
		}
	}

	fmt.Println(headline.Render("\n✨ Welcome to the AI-Powered README Genie! ✨"))
	personality, _ := generator.ResolveStyle(cfg.Style)
	fmt.Println(info.Render(fmt.Sprintf("Using '%s' personality...", personality.Key)))

	fmt.Println(info.Render("🕵️  Scanning project files..."))
	files, err := collector.Collect(cfg.ProjectDir, collector.Options{ExtraIgnores: cfg.Ignore})
	if err != nil {
		return err
	}
	fmt.Println(info.Render(fmt.Sprintf("🔍 Found %d relevant files.", len(files))))
	meta, err := collector.ReadMetadata(cfg.ProjectDir)
	if err != nil {
		return err
	}

	providers, err := buildProviders(cfg)
	if err != nil {
		return err
	}
	gateway, err := generator.NewGateway(providers,
		generator.WithTimeout(cfg.Timeout),
		generator.WithLogger(slog.Default()),
		generator.WithRecorder(recorder),
	)
	if err != nil {
		return err
	}
	agent, err := generator.NewAgent(gateway, slog.Default(), recorder)
	if err != nil {
		return err
	}

	fmt.Println(info.Render("🔮 Summoning the AI to generate a README draft... This may take a moment."))
	draft, err := agent.Generate(ctx, files, cfg.Style, meta)
	if err != nil {
		return err
	}
	slog.Debug("draft ready", "title", generator.ExtractTitle(draft), "bytes", len(draft))
	fmt.Println(success.Render("✅ AI draft ready!"))

	engine, err := review.NewEngine(term, review.Options{AutoApprove: cfg.AutoApprove}, slog.Default(), recorder)
	if err != nil {
		return err
	}
	final, err := engine.Review(ctx, draft)
	if err != nil {
		if review.IsAborted(err) {
			fmt.Println(warning.Render("Review aborted. No file will be written."))
			return nil
		}
		return err
	}
	if final == "" {
		return nil
	}

	out := cfg.Output
	if !filepath.IsAbs(out) {
		out = filepath.Join(cfg.ProjectDir, out)
	}
	pub := publisher.New(true, slog.Default())
	if _, err := pub.Write(out, final); err != nil {
		return err
	}
	fmt.Println(headline.Render(fmt.Sprintf("\n🎉 Success! Your new README has been generated at %s", out)))
	return nil
}

// applyFlags lets explicit flags override file and environment settings.
func applyFlags(cfg *config.Config, cli CLI) {
	if cli.Style != "" {
		cfg.Style = cli.Style
	}
	if cli.Output != "" {
		cfg.Output = cli.Output
	}
	if cli.Timeout > 0 {
		cfg.Timeout = cli.Timeout
	}
	if cli.Yes {
		cfg.AutoApprove = true
	}
}

func buildProviders(cfg *config.Config) ([]generator.Provider, error) {
	if len(cfg.Providers) == 0 {
		return nil, errors.New("no providers configured")
	}
	providers := make([]generator.Provider, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		llm, err := generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider: p.Name,
			Model:    p.Model,
			APIKey:   p.APIKey,
			BaseURL:  p.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", p.Name, err)
		}
		providers = append(providers, llm)
	}
	return providers, nil
}

func showStyles(w io.Writer) {
	title := cases.Title(language.English)
	fmt.Fprintln(w, headline.Render("\nAvailable README Personalities:"))
	fmt.Fprintln(w, "Use the --style flag, e.g., `readme-genie --auto --style goddess`")
	fmt.Fprintln(w)
	for _, p := range generator.Styles() {
		fmt.Fprintf(w, "- %s (%s): %s\n", info.Bold(true).Render(title.String(string(p.Key))), p.Key, p.Description)
	}
	fmt.Fprintln(w)
}
