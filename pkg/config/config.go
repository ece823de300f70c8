package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/umputun/tubefeed/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server ServerConfig `yaml:"server" json:"server" toml:"server" jsonschema:"description=Server configuration"`
	Cache  CacheConfig  `yaml:"cache" json:"cache" toml:"cache" jsonschema:"description=Feed cache configuration"`
	Fetch  FetchConfig  `yaml:"fetch" json:"fetch" toml:"fetch" jsonschema:"description=Feed fetching configuration"`
	Widget Widget       `yaml:"widget" json:"widget" toml:"widget" jsonschema:"description=Widget options"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" toml:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" toml:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" toml:"base_url" jsonschema:"description=Public URL of the page, used as player origin and in output feeds"`
}

// CacheConfig holds cache storage settings
type CacheConfig struct {
	Backend       string        `yaml:"backend" json:"backend" toml:"backend" jsonschema:"default=sqlite,enum=sqlite,enum=redis,enum=memory,description=Cache storage backend"`
	DSN           string        `yaml:"dsn" json:"dsn" toml:"dsn" jsonschema:"default=file:tubefeed.db?cache=shared&mode=rwc,description=SQLite connection string"`
	RedisAddr     string        `yaml:"redis_addr" json:"redis_addr" toml:"redis_addr" jsonschema:"default=localhost:6379,description=Redis address"`
	RedisPassword string        `yaml:"redis_password" json:"redis_password" toml:"redis_password" jsonschema:"description=Redis password (can use environment variable)"`
	RedisDB       int           `yaml:"redis_db" json:"redis_db" toml:"redis_db" jsonschema:"default=0,description=Redis database number"`
	RedisTTL      time.Duration `yaml:"redis_ttl" json:"redis_ttl" toml:"redis_ttl" jsonschema:"default=24h,description=Expiration of redis cache keys, 0 disables"`
}

// FetchConfig holds feed request settings
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" toml:"timeout" jsonschema:"default=30s,description=Timeout per feed request"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" toml:"user_agent" jsonschema:"default=Tubefeed/1.0,description=User agent for feed requests"`
}

// Widget holds all widget options
type Widget struct {
	Title      string               `yaml:"title" json:"title" toml:"title" jsonschema:"default=YouTube,description=Widget title"`
	Feeds      []string             `yaml:"feeds" json:"feeds" toml:"feeds" jsonschema:"description=Feed URLs"`
	ChannelIDs []string             `yaml:"channel_ids" json:"channel_ids" toml:"channel_ids" jsonschema:"description=YouTube channel ids, used when feeds is empty"`
	Proxy      domain.ProxyStrategy `yaml:"proxy" json:"proxy" toml:"proxy" jsonschema:"default=none,enum=none,enum=allorigins,enum=corsproxy,description=Relay used for feed requests"`

	RefreshMinutes Num                  `yaml:"refresh_minutes" json:"refresh_minutes" toml:"refresh_minutes" jsonschema:"default=30,minimum=1,maximum=1440,description=Cache freshness in minutes"`
	ContentFilter  domain.ContentFilter `yaml:"content_filter" json:"content_filter" toml:"content_filter" jsonschema:"default=both,enum=both,enum=videos,enum=shorts,description=Show videos, shorts or both"`

	MaxItems       Num  `yaml:"max_items" json:"max_items" toml:"max_items" jsonschema:"default=6,minimum=1,maximum=200,description=Item count when collapsible is off"`
	Collapsible    bool `yaml:"collapsible" json:"collapsible" toml:"collapsible" jsonschema:"default=false,description=Enable collapsed and expanded counts"`
	ItemsCollapsed Num  `yaml:"items_collapsed" json:"items_collapsed" toml:"items_collapsed" jsonschema:"default=5,minimum=1,maximum=200,description=Item count when collapsed"`
	ItemsExpanded  Num  `yaml:"items_expanded" json:"items_expanded" toml:"items_expanded" jsonschema:"default=12,minimum=1,maximum=500,description=Item count when expanded"`
	ShowExpand     bool `yaml:"show_expand" json:"show_expand" toml:"show_expand" jsonschema:"default=false,description=Show the expand/collapse button"`

	ShowRefresh        bool `yaml:"show_refresh" json:"show_refresh" toml:"show_refresh" jsonschema:"default=true,description=Show the refresh button"`
	ShowChannelFilters bool `yaml:"show_channel_filters" json:"show_channel_filters" toml:"show_channel_filters" jsonschema:"default=false,description=Show channel filter chips"`

	Layout          domain.Layout `yaml:"layout" json:"layout" toml:"layout" jsonschema:"default=list,enum=list,enum=grid,description=Panel layout"`
	GridColumns     Num           `yaml:"grid_columns" json:"grid_columns" toml:"grid_columns" jsonschema:"default=3,minimum=1,maximum=8,description=Grid column count"`
	GridGap         Num           `yaml:"grid_gap" json:"grid_gap" toml:"grid_gap" jsonschema:"default=10,minimum=0,maximum=40,description=Grid gap in pixels"`
	TileShowTitle   bool          `yaml:"tile_show_title" json:"tile_show_title" toml:"tile_show_title" jsonschema:"default=false,description=Show title on grid tiles"`
	TileShowChannel bool          `yaml:"tile_show_channel" json:"tile_show_channel" toml:"tile_show_channel" jsonschema:"default=false,description=Show channel on grid tiles"`
	TileShowDate    bool          `yaml:"tile_show_date" json:"tile_show_date" toml:"tile_show_date" jsonschema:"default=false,description=Show date on grid tiles"`

	ShowThumbnail bool `yaml:"show_thumbnail" json:"show_thumbnail" toml:"show_thumbnail" jsonschema:"default=true,description=Show thumbnails in list layout"`
	ShowChannel   bool `yaml:"show_channel" json:"show_channel" toml:"show_channel" jsonschema:"default=true,description=Show channel in list layout"`
	ShowDate      bool `yaml:"show_date" json:"show_date" toml:"show_date" jsonschema:"default=true,description=Show date in list layout"`

	PlayerMode     domain.PlayerMode `yaml:"player_mode" json:"player_mode" toml:"player_mode" jsonschema:"default=external,enum=external,enum=inline,enum=dialog,description=What happens when a video is selected"`
	PlayerAutoplay bool              `yaml:"player_autoplay" json:"player_autoplay" toml:"player_autoplay" jsonschema:"default=false,description=Autoplay embedded player"`
	PlayerMute     bool              `yaml:"player_mute" json:"player_mute" toml:"player_mute" jsonschema:"default=false,description=Mute embedded player"`
	OpenInNewTab   bool              `yaml:"open_in_new_tab" json:"open_in_new_tab" toml:"open_in_new_tab" jsonschema:"default=true,description=Open external links in a new tab"`

	FiltersAllLabel string `yaml:"filters_all_label" json:"filters_all_label" toml:"filters_all_label" jsonschema:"default=All,description=Label of the all channels chip"`
	RefreshLabel    string `yaml:"refresh_label" json:"refresh_label" toml:"refresh_label" jsonschema:"default=Refresh,description=Refresh button tooltip"`
	ExpandLabel     string `yaml:"expand_label" json:"expand_label" toml:"expand_label" jsonschema:"default=Show more,description=Expand button label"`
	CollapseLabel   string `yaml:"collapse_label" json:"collapse_label" toml:"collapse_label" jsonschema:"default=Show less,description=Collapse button label"`

	FixedHeight bool `yaml:"fixed_height" json:"fixed_height" toml:"fixed_height" jsonschema:"default=false,description=Keep the panel at a fixed height"`
	Height      Num  `yaml:"height" json:"height" toml:"height" jsonschema:"default=420,minimum=120,maximum=2000,description=Panel height in pixels"`
	Scroll      bool `yaml:"scroll" json:"scroll" toml:"scroll" jsonschema:"default=true,description=Scroll overflowing content when height is fixed"`

	Locale        string `yaml:"locale" json:"locale" toml:"locale" jsonschema:"default=en,description=Locale used to sort channel names"`
	RelativeDates bool   `yaml:"relative_dates" json:"relative_dates" toml:"relative_dates" jsonschema:"default=false,description=Show dates as relative time"`
}

// ConfigError reports configuration the widget can't start with
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config: " + e.Msg
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// Default returns configuration with all defaults set
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Listen = ":8080"
	cfg.Server.Timeout = 30 * time.Second
	cfg.Cache.Backend = "sqlite"
	cfg.Cache.DSN = "file:tubefeed.db?cache=shared&mode=rwc&_txlock=immediate"
	cfg.Cache.RedisAddr = "localhost:6379"
	cfg.Cache.RedisTTL = 24 * time.Hour
	cfg.Fetch.Timeout = 30 * time.Second
	cfg.Fetch.UserAgent = "Tubefeed/1.0"
	cfg.Widget = Widget{
		Title:           "YouTube",
		Proxy:           domain.ProxyNone,
		RefreshMinutes:  N(30),
		ContentFilter:   domain.ContentBoth,
		MaxItems:        N(6),
		ItemsCollapsed:  N(5),
		ItemsExpanded:   N(12),
		ShowRefresh:     true,
		Layout:          domain.LayoutList,
		GridColumns:     N(3),
		GridGap:         N(10),
		ShowThumbnail:   true,
		ShowChannel:     true,
		ShowDate:        true,
		PlayerMode:      domain.PlayerExternal,
		OpenInNewTab:    true,
		FiltersAllLabel: "All",
		RefreshLabel:    "Refresh",
		ExpandLabel:     "Show more",
		CollapseLabel:   "Show less",
		Height:          N(420),
		Scroll:          true,
		Locale:          "en",
	}
	return cfg
}

// Load reads configuration from a YAML file, or TOML if the file has .toml extension.
// Values missing in the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parse toml config: %w", err)
		}
	default:
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// normalize lower-cases enums, clamps numbers, resolves feeds and validates the result
func (c *Config) normalize() error {
	w := &c.Widget
	w.Proxy = domain.ProxyStrategy(lowerOr(string(w.Proxy), string(domain.ProxyNone)))
	w.ContentFilter = domain.ContentFilter(lowerOr(string(w.ContentFilter), string(domain.ContentBoth)))
	w.PlayerMode = domain.PlayerMode(lowerOr(string(w.PlayerMode), string(domain.PlayerExternal)))
	w.Layout = domain.Layout(lowerOr(string(w.Layout), string(domain.LayoutList)))
	c.Cache.Backend = lowerOr(c.Cache.Backend, "sqlite")

	w.RefreshMinutes.Clamp(30, 1, 1440)
	w.MaxItems.Clamp(6, 1, 200)
	w.ItemsCollapsed.Clamp(5, 1, 200)
	w.ItemsExpanded.Clamp(12, 1, 500)
	w.GridColumns.Clamp(3, 1, 8)
	w.GridGap.Clamp(10, 0, 40)
	w.Height.Clamp(420, 120, 2000)

	w.Feeds = w.FeedURLs()
	return validate(c)
}

// validate checks configuration for correctness
func validate(c *Config) error {
	w := c.Widget
	if len(w.Feeds) == 0 {
		return &ConfigError{Field: "widget.feeds", Msg: "provide feeds (feed urls) or channel_ids"}
	}

	checks := []struct {
		field, value string
		allowed      []string
	}{
		{"widget.proxy", string(w.Proxy), []string{"none", "allorigins", "corsproxy"}},
		{"widget.content_filter", string(w.ContentFilter), []string{"both", "videos", "shorts"}},
		{"widget.player_mode", string(w.PlayerMode), []string{"external", "inline", "dialog"}},
		{"widget.layout", string(w.Layout), []string{"list", "grid"}},
		{"cache.backend", c.Cache.Backend, []string{"sqlite", "redis", "memory"}},
	}
	for _, chk := range checks {
		if !slices.Contains(chk.allowed, chk.value) {
			return &ConfigError{Field: chk.field, Msg: fmt.Sprintf("unsupported value %q, expected one of %s",
				chk.value, strings.Join(chk.allowed, ", "))}
		}
	}

	if c.Server.Timeout < time.Second {
		return &ConfigError{Field: "server.timeout", Msg: "must be at least 1 second"}
	}
	if c.Fetch.Timeout < time.Second {
		return &ConfigError{Field: "fetch.timeout", Msg: "must be at least 1 second"}
	}
	return nil
}

// FeedURLs returns configured feed urls, or urls built from channel ids when no feeds are set.
// Blank entries are skipped.
func (w Widget) FeedURLs() []string {
	res := make([]string, 0, len(w.Feeds))
	for _, f := range w.Feeds {
		if f = strings.TrimSpace(f); f != "" {
			res = append(res, f)
		}
	}
	if len(res) > 0 {
		return res
	}
	for _, id := range w.ChannelIDs {
		if strings.TrimSpace(id) != "" {
			res = append(res, domain.ChannelFeedURL(id))
		}
	}
	return res
}

// RefreshInterval returns refresh_minutes as a duration
func (w Widget) RefreshInterval() time.Duration {
	return time.Duration(max(1, w.RefreshMinutes.Int())) * time.Minute
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the public base url, empty if not configured
func (c *Config) GetBaseURL() string {
	return strings.TrimRight(c.Server.BaseURL, "/")
}

// GetWidget returns widget options
func (c *Config) GetWidget() Widget {
	return c.Widget
}

func lowerOr(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}
