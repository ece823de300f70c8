package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/tubefeed/pkg/cache"
	"github.com/umputun/tubefeed/pkg/config"
	"github.com/umputun/tubefeed/pkg/feed"
	"github.com/umputun/tubefeed/pkg/repository"
	"github.com/umputun/tubefeed/pkg/scheduler"
	"github.com/umputun/tubefeed/pkg/view"
	"github.com/umputun/tubefeed/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"tubefeed.yml" description:"configuration file (yaml or toml)"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"optional env file loaded before config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	opts, err := parseOpts(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = color.NoColor || opts.NoColor
	setupLog(opts.Debug)

	log.Printf("[INFO] starting tubefeed version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err = run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// parseOpts parses the command line. Variables from the env file don't override the
// environment, so the second pass only picks up values the environment didn't set.
func parseOpts(args []string) (Opts, error) {
	var opts Opts
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs(args); err != nil {
		return Opts{}, err
	}
	if opts.EnvFile == "" {
		return opts, nil
	}
	if err := godotenv.Load(opts.EnvFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[WARN] can't load env file %s: %v", opts.EnvFile, err)
		}
		return opts, nil
	}

	var withEnv Opts
	if _, err := flags.NewParser(&withEnv, flags.Default).ParseArgs(args); err != nil {
		return Opts{}, err
	}
	return withEnv, nil
}

// app holds the components swapped on configuration reload
type app struct {
	opts  Opts
	ctrl  *view.Controller
	srv   *server.Server
	cfg   *config.Config
	mu    sync.Mutex
	sched *scheduler.Scheduler
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.Cache.RedisPassword != "" {
		setupLog(opts.Debug, cfg.Cache.RedisPassword)
	}

	store, closeStore, err := makeStore(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to initialize cache store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("[WARN] failed to close cache store: %v", err)
		}
	}()

	fetcher := feed.NewHTTPFetcher(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	loader := view.NewLoader(cache.New(store), feed.NewAggregator(fetcher))
	events := server.NewBroadcaster()
	ctrl := view.NewController(loader, events, viewOptions(cfg.Widget))

	a := &app{
		opts:  opts,
		ctrl:  ctrl,
		cfg:   cfg,
		srv:   server.New(cfg, ctrl, events, revision, opts.Debug),
		sched: scheduler.NewScheduler(ctrl, cfg.Widget.RefreshInterval()),
	}
	log.Printf("[INFO] %d feeds configured, cache backend %s, player mode %s",
		len(cfg.Widget.Feeds), cfg.Cache.Backend, cfg.Widget.PlayerMode)

	a.sched.Start(ctx)
	defer a.stopScheduler()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				log.Print("[INFO] reload signal received")
				if err := a.reload(ctx); err != nil {
					log.Printf("[WARN] reload failed, keeping current configuration: %v", err)
				}
			}
		}
	}()

	if err := a.srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// reload re-reads the configuration, resets the view and restarts background refresh.
// Cache backend, fetch and listen settings apply only after restart.
func (a *app) reload(ctx context.Context) error {
	cfg, err := loadConfig(a.opts)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if cfg.Cache != a.cfg.Cache || cfg.Fetch != a.cfg.Fetch || cfg.Server.Listen != a.cfg.Server.Listen {
		log.Printf("[WARN] server, cache and fetch changes need a restart")
	}
	a.cfg = cfg
	a.srv.UpdateConfig(cfg)
	a.ctrl.Reconfigure(viewOptions(cfg.Widget))

	a.sched.Stop()
	a.sched = scheduler.NewScheduler(a.ctrl, cfg.Widget.RefreshInterval())
	a.sched.Start(ctx)
	log.Printf("[INFO] configuration reloaded, %d feeds", len(cfg.Widget.Feeds))
	return nil
}

func (a *app) stopScheduler() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sched.Stop()
}

func loadConfig(opts Opts) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	return cfg, nil
}

// makeStore creates the persistence store for the configured cache backend
func makeStore(ctx context.Context, cfg config.CacheConfig) (cache.Store, func() error, error) {
	switch cfg.Backend {
	case "memory":
		return cache.NewMemoryStore(), func() error { return nil }, nil
	case "redis":
		rs, err := cache.NewRedisStore(ctx, cache.RedisOpts{
			Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB, TTL: cfg.RedisTTL,
		})
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil
	default:
		repos, err := repository.NewRepositories(ctx, repository.Config{DSN: cfg.DSN})
		if err != nil {
			return nil, nil, err
		}
		return repos.Cache, repos.Close, nil
	}
}

// viewOptions maps widget configuration to view model options
func viewOptions(w config.Widget) view.Options {
	return view.Options{
		Feeds:           w.FeedURLs(),
		Proxy:           w.Proxy,
		RefreshInterval: w.RefreshInterval(),
		Locale:          w.Locale,
		ContentFilter:   w.ContentFilter,
		Collapsible:     w.Collapsible,
		ShowExpand:      w.ShowExpand,
		MaxItems:        w.MaxItems.Int(),
		ItemsCollapsed:  w.ItemsCollapsed.Int(),
		ItemsExpanded:   w.ItemsExpanded.Int(),
	}
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
