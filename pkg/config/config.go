// Package config loads paragon settings from a TOML file.
//
// Every setting has a default (see [Default]), so a config file only needs
// the keys it changes. Command-line flags override file values.
//
//	class_dir = "classes"
//	output_dir = "out"
//	edge_length = 21
//	max_path_length = 300
//
//	[search]
//	limit = 0
//	workers = 4
//	timeout_seconds = 600
//
//	[cache]
//	backend = "redis"          # file | redis | none
//	redis_addr = "localhost:6379"
//	ttl_hours = 168
//
//	[store]
//	backend = "mongo"          # file | mongo | none
//	mongo_uri = "mongodb://localhost:27017"
//	database = "paragon"
//	collection = "runs"
//
//	[server]
//	listen = ":8080"
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/paragon/pkg/board"
	"github.com/matzehuels/paragon/pkg/errors"
)

// EnvConfig names the environment variable holding the config file path.
const EnvConfig = "PARAGON_CONFIG"

// Backend names shared by the cache and store sections.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the full paragon configuration.
type Config struct {
	ClassDir  string `toml:"class_dir"`
	OutputDir string `toml:"output_dir"`
	Edge      int    `toml:"edge_length"`

	// MaxPathLength bounds path scoring. It is carried for board files that
	// declare it; enumeration does not read it.
	MaxPathLength int `toml:"max_path_length"`

	Search Search `toml:"search"`
	Cache  Cache  `toml:"cache"`
	Store  Store  `toml:"store"`
	Server Server `toml:"server"`
}

// Search bounds the enumeration.
type Search struct {
	Limit          int `toml:"limit"`
	Workers        int `toml:"workers"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Timeout returns the search deadline, or zero for none.
func (s Search) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Cache selects the result cache.
type Cache struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
	TTLHours  int    `toml:"ttl_hours"`
}

// TTL returns the cache entry lifetime.
func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Store selects where enumeration runs are persisted.
type Store struct {
	Backend    string `toml:"backend"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API.
type Server struct {
	Listen string `toml:"listen"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ClassDir:      "classes",
		OutputDir:     ".",
		Edge:          board.DefaultEdge,
		MaxPathLength: 300,
		Search: Search{
			Workers: 1,
		},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTLHours:  24 * 7,
		},
		Store: Store{
			Backend:    BackendFile,
			MongoURI:   "mongodb://localhost:27017",
			Database:   "paragon",
			Collection: "runs",
		},
		Server: Server{
			Listen: ":8080",
		},
	}
}

// Load reads path over the defaults and validates the result. Keys missing
// from the file keep their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// LoadOrDefault loads path when it is non-empty, falling back to the
// PARAGON_CONFIG environment variable, then to [Default].
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges and backend names.
func (c Config) Validate() error {
	if c.Edge < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "edge_length must be >= 1, got %d", c.Edge)
	}
	if c.ClassDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "class_dir cannot be empty")
	}
	if c.Search.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "search.limit must be >= 0, got %d", c.Search.Limit)
	}
	if c.Search.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "search.workers must be >= 0, got %d", c.Search.Workers)
	}
	if c.Search.TimeoutSeconds < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "search.timeout_seconds must be >= 0, got %d", c.Search.TimeoutSeconds)
	}
	switch c.Cache.Backend {
	case BackendNone, BackendFile:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be 'file', 'redis' or 'none')", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case BackendNone, BackendFile:
	case BackendMongo:
		if c.Store.MongoURI == "" || c.Store.Database == "" || c.Store.Collection == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri, store.database and store.collection are required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q (must be 'file', 'mongo' or 'none')", c.Store.Backend)
	}
	return nil
}
