package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Syd25-legend/physigenai/internal/compiler"
	"github.com/Syd25-legend/physigenai/internal/config"
	"github.com/Syd25-legend/physigenai/internal/host"
	"github.com/Syd25-legend/physigenai/internal/scenario"
	"github.com/Syd25-legend/physigenai/internal/tui"
)

var (
	configFile string
	endpoint   string
	model      string
	frameRate  int
	logLevel   string
	noValidate bool
	fromFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "physigen",
		Short: "prompt-driven physics scenarios in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession("")
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "scenario generator endpoint")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "generator model name")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", 0, "frames per second")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "zap log level")
	rootCmd.PersistentFlags().BoolVar(&noValidate, "no-validate", false, "skip pre-mount source validation")

	runCmd := &cobra.Command{
		Use:   "run [topic]",
		Short: "start a session with a specific scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := ""
			if len(args) > 0 {
				topic = args[0]
			}
			return runSession(topic)
		},
	}
	runCmd.Flags().StringVar(&fromFile, "file", "", "load scenario source from a file")

	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tID\tDESCRIPTION")
			for _, unit := range scenario.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", unit.Title, unit.ID, unit.Explanation)
			}
			return w.Flush()
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "compile a scenario file without mounting it",
		Args:  cobra.ExactArgs(1),
		RunE:  checkScenario,
	}

	rootCmd.AddCommand(runCmd, libraryCmd, checkCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if model != "" {
		cfg.Model = model
	}
	if frameRate > 0 {
		cfg.FrameRate = frameRate
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if noValidate {
		cfg.Validate = false
	}
	return cfg, nil
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.OutputPaths = []string{"physigen.log"}
	zc.ErrorOutputPaths = []string{"physigen.log"}
	return zc.Build()
}

func runSession(topic string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()
	compiler.SetLogger(log.Named("compiler"))

	h, err := host.New(host.Options{
		Validate: cfg.Validate,
		Logger:   log.Named("host"),
	})
	if err != nil {
		return err
	}

	unit, err := pickScenario(cfg, topic)
	if err != nil {
		return err
	}
	// A broken starting scenario is survivable; the session opens on the
	// diagnostic placeholder instead.
	if err := h.Install(unit); err != nil {
		log.Warn("initial scenario failed", zap.Error(err))
	}

	var gen scenario.Generator
	if cfg.Endpoint != "" {
		gen = scenario.NewHTTPGenerator(cfg.Endpoint, cfg.Model, cfg.Timeout(), log.Named("generator"))
	}

	p := tea.NewProgram(tui.NewModel(h, gen, cfg.FrameRate), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func pickScenario(cfg *config.Config, topic string) (*scenario.SourceUnit, error) {
	if fromFile != "" {
		return scenario.FromFile(fromFile)
	}
	if topic == "" {
		topic = cfg.DefaultScenario
	}
	if unit, ok := scenario.Lookup(topic); ok {
		return unit, nil
	}
	if topic != "" && topic != cfg.DefaultScenario {
		return nil, fmt.Errorf("no built-in scenario matches %q; use --file or press / in the session", topic)
	}
	return scenario.Default(), nil
}

func checkScenario(cmd *cobra.Command, args []string) error {
	unit, err := scenario.FromFile(args[0])
	if err != nil {
		return err
	}
	if err := compiler.Validate(unit.Source); err != nil {
		fmt.Printf("REJECTED  %s: %v\n", unit.Title, err)
		os.Exit(1)
	}
	pipeline := compiler.NewPipeline(compiler.DefaultAdapter())
	if _, err := pipeline.Prepare(unit.Source); err != nil {
		var synErr *compiler.SyntaxError
		switch {
		case errors.Is(err, compiler.ErrShape):
			fmt.Printf("BAD SHAPE %s: %v\n", unit.Title, err)
		case errors.As(err, &synErr):
			fmt.Printf("SYNTAX    %s: %v\n", unit.Title, err)
		default:
			fmt.Printf("FAILED    %s: %v\n", unit.Title, err)
		}
		os.Exit(1)
	}
	fmt.Printf("OK        %s (%d bytes)\n", unit.Title, len(unit.Source))
	return nil
}
