package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"imagepicker/internal/config"
	"imagepicker/internal/discovery"
	"imagepicker/internal/domain"
	"imagepicker/internal/eventbus"
	"imagepicker/internal/picker"
	"imagepicker/internal/thumbnail"
	"imagepicker/internal/ui"
)

// cliOptions holds the parsed command line
type cliOptions struct {
	targetDir  string
	configPath string
	logPath    string
	filter     string
	single     bool
	sniff      bool
	jsonOut    bool
	preselect  []string
}

func newFlagSet(opts *cliOptions) *pflag.FlagSet {
	flags := pflag.NewFlagSet("imagepicker", pflag.ContinueOnError)
	flags.StringVarP(&opts.targetDir, "dir", "d", "", "Directory to scan for images and videos")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default <dir>/"+config.FileName+")")
	flags.StringVar(&opts.logPath, "log", "imagepicker.log", "Log file")
	flags.StringVar(&opts.filter, "filter", "", "Media kinds to show: both, images or videos")
	flags.BoolVar(&opts.single, "single", false, "Single-select mode: a new pick replaces the previous one")
	flags.BoolVar(&opts.sniff, "sniff", false, "Recover the positions of preselected sources from the scanned items")
	flags.BoolVar(&opts.jsonOut, "json", false, "Print the selection as JSON")
	flags.StringArrayVarP(&opts.preselect, "preselect", "p", nil, "Preselected source (repeatable)")
	return flags
}

func main() {
	var opts cliOptions
	flags := newFlagSet(&opts)
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	// If no directory specified, check for remaining args
	if opts.targetDir == "" && flags.NArg() > 0 {
		opts.targetDir = flags.Arg(0)
	}
	if opts.targetDir == "" {
		opts.targetDir = "."
	}

	absDir, err := filepath.Abs(opts.targetDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logFile, err := tea.LogToFile(opts.logPath, "imagepicker")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	code := run(ctx, flags, opts, absDir)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, flags *pflag.FlagSet, opts cliOptions, absDir string) int {
	bus := eventbus.New()
	defer bus.Close()

	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Printf("Error: %s: %v", event.Message, event.Err)
		}
	})
	bus.Subscribe(eventbus.EventScanCompleted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScanCompletedEvent); ok {
			log.Printf("Scan of %s found %d items", event.Root, event.ItemsFound)
		}
	})

	configPath := opts.configPath
	if configPath == "" {
		configPath = filepath.Join(absDir, config.FileName)
	}
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg := loadOrCreateConfig(configSvc, configPath, absDir)
	if err := applyFlags(flags, opts, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	osFs := afero.NewOsFs()
	items, err := discovery.NewDiscoveryService(osFs, bus, cfg.UISettings.Filter).Scan(ctx, absDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", absDir, err)
		return 1
	}

	ctrl := picker.New(picker.Props{
		Items:       items,
		Multiple:    cfg.Multiple,
		Preselected: resolvePreselection(opts.preselect, cfg, absDir),
		SniffIndex:  cfg.SniffIndex,
		OnSelectionChanged: func(change picker.SelectionChange) {
			log.Printf("Selection changed: %d picked (clicked %s, removed=%v)",
				len(change.Picks), change.Clicked.Source, change.Removed)
			bus.Publish(eventbus.SelectionChangedEvent{
				Picks:   change.Picks,
				Clicked: change.Clicked,
				Removed: change.Removed,
			})
		},
	})

	renderers, err := thumbnail.NewSet(osFs, thumbnail.Options{
		Width:      cfg.UISettings.ThumbWidth,
		Height:     cfg.UISettings.ThumbHeight,
		ShowLabels: cfg.UISettings.ShowLabels,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	model := ui.NewModel(ctrl, renderers, ui.Options{
		Title:          "imagepicker",
		WarmThumbnails: true,
	})
	model.SetContext(ctx)

	// The grid draws on stderr so stdout only carries the selection
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	// Edits to the config file replace the preselection while the grid is open
	watcher := config.NewWatcher(configSvc, bus, configPath)
	if err := watcher.Start(ctx); err != nil {
		log.Printf("Config watcher disabled: %v", err)
	}
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			pre := anchorPreselection(picker.ParsePreselection(event.Preselected), absDir)
			p.Send(ui.PreselectionReplacedMsg{Preselection: pre})
		}
	})

	log.Printf("Starting UI with %d items", len(items))
	_, runErr := p.Run()
	if err := watcher.Close(); err != nil {
		log.Printf("Failed to stop config watcher: %v", err)
	}
	if runErr != nil {
		log.Printf("Error running program: %v", runErr)
		if !errors.Is(runErr, tea.ErrProgramKilled) {
			fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		}
		return 1
	}

	res := model.Result()
	if !res.Confirmed {
		log.Printf("Selection cancelled")
		return 1
	}

	if cfg.UISettings.AutosaveOnExit {
		cfg.SetPicks(res.Picks)
		if err := configSvc.SaveToPath(cfg, configPath); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	}

	if err := printSelection(os.Stdout, res, opts.jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing selection: %v\n", err)
		return 1
	}
	return 0
}

// loadOrCreateConfig loads the config at configPath or writes a fresh one for
// targetDir, seeded from the user-wide config
func loadOrCreateConfig(configSvc config.ConfigService, configPath, targetDir string) *config.Config {
	if _, err := os.Stat(configPath); err == nil {
		cfg, err := configSvc.LoadFromPath(configPath)
		if err == nil {
			log.Printf("Loaded config from %s", configPath)
			return cfg
		}
		log.Printf("Failed to load config %s: %v", configPath, err)
	}

	log.Printf("Creating new config for %s", targetDir)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Failed to load user config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	// Preselection is per directory
	cfg.BaseDir = targetDir
	cfg.Preselected = []any{}

	if err := configSvc.SaveToPath(cfg, configPath); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg
}

// applyFlags lets explicitly set flags win over the config file
func applyFlags(flags *pflag.FlagSet, opts cliOptions, cfg *config.Config) error {
	if flags.Changed("single") {
		cfg.Multiple = !opts.single
	}
	if flags.Changed("sniff") {
		cfg.SniffIndex = opts.sniff
	}
	if flags.Changed("filter") {
		cfg.UISettings.Filter = opts.filter
	}
	filter, err := discovery.NormalizeFilter(cfg.UISettings.Filter)
	if err != nil {
		return err
	}
	cfg.UISettings.Filter = filter
	return nil
}

// resolvePreselection prefers sources given on the command line over the config
// file. Relative sources are taken relative to baseDir, where discovery reports
// absolute paths.
func resolvePreselection(sources []string, cfg *config.Config, baseDir string) *picker.Preselection {
	if len(sources) > 0 {
		return anchorPreselection(picker.PreselectSources(sources...), baseDir)
	}
	return anchorPreselection(picker.ParsePreselection(cfg.Preselected), baseDir)
}

// anchorPreselection returns pre with relative sources joined onto baseDir.
// Empty sources are left alone.
func anchorPreselection(pre *picker.Preselection, baseDir string) *picker.Preselection {
	anchor := func(src string) string {
		if src == "" || filepath.IsAbs(src) {
			return src
		}
		return filepath.Join(baseDir, src)
	}

	out := &picker.Preselection{}
	for _, src := range pre.Sources {
		out.Sources = append(out.Sources, anchor(src))
	}
	for _, p := range pre.Picks {
		out.Picks = append(out.Picks, domain.Pick{Source: anchor(p.Source), PositionIndex: p.PositionIndex})
	}
	return out
}

// printSelection writes the picks, one source per line or as JSON. In JSON a
// single-select result is one object, or null when nothing was picked.
func printSelection(w io.Writer, res ui.Result, asJSON bool) error {
	if !asJSON {
		for _, p := range res.Picks {
			if _, err := fmt.Fprintln(w, p.Source); err != nil {
				return err
			}
		}
		return nil
	}

	var payload any = res.Picks
	if res.Picks == nil {
		payload = []domain.Pick{}
	}
	if !res.Multiple {
		var single *domain.Pick
		if len(res.Picks) > 0 {
			single = &res.Picks[0]
		}
		payload = single
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
