// Package config loads tilestack configuration from TOML.
//
// Configuration is resolved in three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file (explicit path, or ./tilestack.toml when present)
//  3. TILESTACK_* environment variables
//
// A minimal file only states what differs from the defaults:
//
//	[server]
//	addr = ":9000"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "redis:6379"
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/tilestack/pkg/errors"
)

// DefaultFile is the config file picked up from the working directory when
// no path is given.
const DefaultFile = "tilestack.toml"

// Backend names.
const (
	BackendDir   = "dir"
	BackendMongo = "mongo"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete tilestack configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Themes    ThemesConfig    `toml:"themes"`
	Generator GeneratorConfig `toml:"generator"`
	Cache     CacheConfig     `toml:"cache"`
	Mongo     MongoConfig     `toml:"mongo"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string `toml:"addr"`

	// AllowedOrigins lists the CORS origins allowed to call the API.
	// Use "*" to allow any origin.
	AllowedOrigins []string `toml:"allowed_origins"`

	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// ThemesConfig describes where themes come from and which ids are public.
type ThemesConfig struct {
	// Backend is "dir" (theme files on disk) or "mongo".
	Backend string `toml:"backend"`

	// Dir holds <id>.json, <id>.yaml or <id>.toml theme files.
	Dir string `toml:"dir"`

	// IDs are the theme ids served by the API, in listing order.
	IDs []string `toml:"ids"`

	// Aliases map a public id to the stored theme it reads.
	Aliases map[string]string `toml:"aliases"`

	// Fixtures map a public id to a pre-generated tile set file returned
	// instead of a fresh board.
	Fixtures map[string]string `toml:"fixtures"`
}

// GeneratorConfig holds board generation settings.
type GeneratorConfig struct {
	DefaultRowSize    int `toml:"default_row_size"`
	DefaultColumnSize int `toml:"default_column_size"`

	// MaxTiles caps rows × columns per board; 0 disables the cap.
	MaxTiles int `toml:"max_tiles"`

	// Strict fails generation when a layer group leaves tiles uncovered.
	Strict bool `toml:"strict"`
}

// CacheConfig selects the theme cache.
type CacheConfig struct {
	// Backend is "file", "redis" or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory; empty means the XDG cache dir.
	Dir string `toml:"dir"`

	TTL       time.Duration `toml:"ttl"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
}

// MongoConfig points at the theme collection for the mongo backend.
type MongoConfig struct {
	URI        string        `toml:"uri"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
	Timeout    time.Duration `toml:"timeout"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json

	// File enables a rotating log file in addition to stderr.
	File           string `toml:"file"`
	FileMaxSizeMB  int    `toml:"file_max_size_mb"`
	FileMaxBackups int    `toml:"file_max_backups"`
	FileMaxAgeDays int    `toml:"file_max_age_days"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			AllowedOrigins:  []string{"http://localhost:3000"},
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Themes: ThemesConfig{
			Backend:  BackendDir,
			Dir:      "./assets/themes",
			IDs:      []string{"hongKong", "test"},
			Aliases:  map[string]string{"test": "hongKong"},
			Fixtures: map[string]string{"test": "./assets/tileSets/testTileSet.json"},
		},
		Generator: GeneratorConfig{
			DefaultRowSize:    5,
			DefaultColumnSize: 6,
			MaxTiles:          400,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			TTL:       time.Hour,
			RedisAddr: "localhost:6379",
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "tilestack",
			Collection: "themes",
			Timeout:    5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:          "info",
			Format:         "text",
			FileMaxSizeMB:  10,
			FileMaxBackups: 5,
			FileMaxAgeDays: 30,
		},
	}
}

// Load resolves the configuration. An empty path reads ./tilestack.toml if
// it exists; an explicit path that cannot be read is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides settings from TILESTACK_* environment variables.
func (c *Config) applyEnv() error {
	str := map[string]*string{
		"TILESTACK_ADDR":           &c.Server.Addr,
		"TILESTACK_THEMES_BACKEND": &c.Themes.Backend,
		"TILESTACK_THEMES_DIR":     &c.Themes.Dir,
		"TILESTACK_CACHE_BACKEND":  &c.Cache.Backend,
		"TILESTACK_CACHE_DIR":      &c.Cache.Dir,
		"TILESTACK_REDIS_ADDR":     &c.Cache.RedisAddr,
		"TILESTACK_MONGO_URI":      &c.Mongo.URI,
		"TILESTACK_LOG_LEVEL":      &c.Logging.Level,
		"TILESTACK_LOG_FILE":       &c.Logging.File,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("TILESTACK_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("TILESTACK_THEMES"); v != "" {
		c.Themes.IDs = splitList(v)
	}
	if v := os.Getenv("TILESTACK_STRICT"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "TILESTACK_STRICT")
		}
		c.Generator.Strict = strict
	}
	if v := os.Getenv("TILESTACK_MAX_TILES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "TILESTACK_MAX_TILES")
		}
		c.Generator.MaxTiles = n
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the configuration for values the rest of the program
// cannot work with.
func (c *Config) Validate() error {
	switch c.Themes.Backend {
	case BackendDir, BackendMongo:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "themes.backend: unknown backend %q (must be 'dir' or 'mongo')", c.Themes.Backend)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend: unknown backend %q (must be 'file', 'redis' or 'none')", c.Cache.Backend)
	}

	if len(c.Themes.IDs) == 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "themes.ids: at least one theme id is required")
	}
	for _, id := range c.Themes.IDs {
		if err := errs.ValidateThemeID(id); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "themes.ids")
		}
	}
	for id, target := range c.Themes.Aliases {
		if err := errs.ValidateThemeID(target); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "themes.aliases.%s", id)
		}
	}

	if c.Generator.MaxTiles < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "generator.max_tiles must not be negative")
	}
	if err := errs.ValidateGridSize(c.Generator.DefaultRowSize, c.Generator.DefaultColumnSize, c.Generator.MaxTiles); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "generator default size")
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "logging.format: unknown format %q (must be 'text' or 'json')", c.Logging.Format)
	}
	return nil
}
