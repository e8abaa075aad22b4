// Command warpglobe plays the scroll-driven emissions story in the terminal
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/warpglobe/audio"
	"github.com/lixenwraith/warpglobe/core"
	"github.com/lixenwraith/warpglobe/data"
	"github.com/lixenwraith/warpglobe/engine"
	"github.com/lixenwraith/warpglobe/input"
	"github.com/lixenwraith/warpglobe/metrics"
	"github.com/lixenwraith/warpglobe/narrative"
	"github.com/lixenwraith/warpglobe/parameter"
	"github.com/lixenwraith/warpglobe/race"
	"github.com/lixenwraith/warpglobe/render"
	"github.com/lixenwraith/warpglobe/starfield"
	"github.com/lixenwraith/warpglobe/story"
)

// options holds the command line flags
type options struct {
	storyPath   string
	dataDir     string
	colorMode   string
	mute        bool
	metricsAddr string
	logFile     string
	logLevel    string
	logJSON     bool
	fps         int
	keymap      string
}

var (
	opts   options
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "warpglobe",
	Short: "Scroll-driven emissions story on a terminal globe",
	Long: `warpglobe warps back two centuries and scrolls forward through the
history of CO2 emissions on a rotating orthographic globe.

Scroll or use the arrow keys to move through the story, y to toggle the
year of a step, r for the regional race and q to quit.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(opts.logFile, opts.logLevel, opts.logJSON)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), opts)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&opts.storyPath, "story", "", "story YAML file (built-in story when empty)")
	f.StringVar(&opts.dataDir, "data-dir", "data", "directory holding the CSV and TopoJSON files")
	f.StringVar(&opts.colorMode, "color", "auto", "color mode: auto, truecolor, 256")
	f.BoolVar(&opts.mute, "mute", false, "start with audio muted")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	f.StringVar(&opts.keymap, "keymap", "", "YAML key binding overrides")
	f.IntVar(&opts.fps, "fps", 60, "frame rate")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to this file (disabled when empty)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.BoolVar(&opts.logJSON, "log-json", false, "JSON log lines")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cuePlayer is the audio surface owned by main
type cuePlayer interface {
	engine.Audio
	Close()
}

// run wires every component and blocks in the frame loop
func run(ctx context.Context, o options) error {
	st, err := loadStory(o.storyPath)
	if err != nil {
		return err
	}
	keys, err := loadKeys(o.keymap)
	if err != nil {
		return err
	}

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)
	loader := data.NewLoader(os.DirFS(o.dataDir), logger, m)
	defer loader.Close()

	countries, err := loader.LoadWorld(st.WorldFile)
	if err != nil {
		logger.Warn("world outlines unavailable", zap.String("path", st.WorldFile), zap.Error(err))
	}
	var rows []data.RegionRow
	if st.RegionFile != "" {
		if rows, err = loader.LoadRegion(st.RegionFile); err != nil {
			logger.Warn("region table unavailable", zap.String("path", st.RegionFile), zap.Error(err))
		}
	}
	raceBars := race.New(rows)

	var cues cuePlayer
	if p, err := audio.NewPlayer(logger, o.mute); err == nil {
		cues = p
	} else {
		logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		cues = audio.NewNop(o.mute)
	}
	defer cues.Close()

	if o.metricsAddr != "" {
		srv := newMetricsServer(o.metricsAddr, logger)
		core.Go(func() {
			if err := srv.Start(); err != nil {
				logger.Error("metrics server", zap.Error(err))
			}
		})
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	core.SetCrashScreen(screen)
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	w, h := screen.Size()
	stars := starfield.NewEngine(w, h*2, uint64(time.Now().UnixNano()))
	stars.Init(parameter.StarCount)

	ctrl, err := narrative.New(narrative.Config{
		Story:     st,
		Countries: countries,
		Stars:     stars,
		Race:      raceBars,
		Fetcher:   loader,
		Cues:      cues,
		Logger:    logger.Named("narrative"),
		Metrics:   m,
	})
	if err != nil {
		return err
	}

	interval := parameter.FrameUpdateInterval
	if o.fps > 0 {
		interval = time.Second / time.Duration(o.fps)
	}
	eng, err := engine.New(engine.Config{
		Screen:        screen,
		ColorMode:     render.ParseColorMode(o.colorMode),
		Controller:    ctrl,
		Stars:         stars,
		Race:          raceBars,
		Keys:          keys,
		Results:       loader.Results(),
		Audio:         cues,
		FrameInterval: interval,
		Logger:        logger.Named("engine"),
		Metrics:       m,
	})
	if err != nil {
		return err
	}

	logger.Info("starting", zap.String("story", st.Title), zap.Int("steps", len(st.Steps)))
	return eng.Run(ctx)
}

// loadStory reads the story file, or the built-in story when path is empty
func loadStory(path string) (*story.Story, error) {
	if path == "" {
		return story.Default()
	}
	return story.LoadFile(path)
}

// loadKeys merges an optional keymap file over the default bindings
func loadKeys(path string) (*input.KeyTable, error) {
	keys := input.DefaultKeyTable()
	if path == "" {
		return keys, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	override, err := input.LoadKeyConfig(raw)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(keys, override), nil
}
