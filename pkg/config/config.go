package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendMemory   = "memory"
)

// Config is a struct that holds configuration parameters for the package.
type Config struct {
	// Delimiter is the field delimiter of the CSV source.
	Delimiter rune

	// Encoding is the text encoding of the CSV source, for example
	// "utf-8" or "windows-1252".
	Encoding string

	// LogFile is the path of the audit log of an import run. If empty, it
	// is derived from the source file name.
	LogFile string

	// ProgressEvery is the number of rows between progress notices.
	ProgressEvery int

	// Backend is the store used for persisting entities: "postgres",
	// "mysql" or "memory".
	Backend string

	// CacheDir is a directory for the key-value lookup cache.
	CacheDir string

	// WithCache enables the key-value lookup cache.
	WithCache bool

	// DBHost is a host name of the database.
	DBHost string

	// DBPort is a port of the database, 0 means the backend default.
	DBPort int

	// DBUser is a user name for the database.
	DBUser string

	// DBPass is a password for the database.
	DBPass string

	// DBName is a database name.
	DBName string
}

// Option type allows to change settings for Config.
type Option func(*Config)

// OptDelimiter sets the CSV field delimiter.
func OptDelimiter(d rune) Option {
	return func(cfg *Config) {
		cfg.Delimiter = d
	}
}

// OptEncoding sets the text encoding of the CSV source.
func OptEncoding(e string) Option {
	return func(cfg *Config) {
		cfg.Encoding = e
	}
}

// OptLogFile sets the path of the audit log.
func OptLogFile(f string) Option {
	return func(cfg *Config) {
		cfg.LogFile = f
	}
}

// OptProgressEvery sets the number of rows between progress notices.
func OptProgressEvery(n int) Option {
	return func(cfg *Config) {
		cfg.ProgressEvery = n
	}
}

// OptBackend sets the store backend.
func OptBackend(b string) Option {
	return func(cfg *Config) {
		cfg.Backend = b
	}
}

// OptCacheDir sets a directory for the lookup cache.
func OptCacheDir(d string) Option {
	return func(cfg *Config) {
		cfg.CacheDir = d
	}
}

// OptWithCache enables or disables the lookup cache.
func OptWithCache(b bool) Option {
	return func(cfg *Config) {
		cfg.WithCache = b
	}
}

// OptDBHost sets host name of the database.
func OptDBHost(h string) Option {
	return func(cfg *Config) {
		cfg.DBHost = h
	}
}

// OptDBPort sets port of the database.
func OptDBPort(p int) Option {
	return func(cfg *Config) {
		cfg.DBPort = p
	}
}

// OptDBUser sets user of the database.
func OptDBUser(u string) Option {
	return func(cfg *Config) {
		cfg.DBUser = u
	}
}

// OptDBPass sets password of the database.
func OptDBPass(p string) Option {
	return func(cfg *Config) {
		cfg.DBPass = p
	}
}

// OptDBName sets the database name.
func OptDBName(d string) Option {
	return func(cfg *Config) {
		cfg.DBName = d
	}
}

// New creates a Config with defaults and applies opts to it.
func New(opts ...Option) Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	res := Config{
		Delimiter:     ',',
		Encoding:      "utf-8",
		ProgressEvery: 100,
		Backend:       BackendPostgres,
		CacheDir:      filepath.Join(cacheDir, "oeaimport", "lookup"),
		DBHost:        "0.0.0.0",
		DBUser:        "postgres",
		DBPass:        "postgres",
		DBName:        "oeai",
	}

	for _, opt := range opts {
		opt(&res)
	}

	res.CacheDir = expandHome(res.CacheDir)
	res.LogFile = expandHome(res.LogFile)
	return res
}

// DSN returns a connection string for the configured backend.
func (cfg Config) DSN() string {
	switch cfg.Backend {
	case BackendMySQL:
		port := cfg.DBPort
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, port, cfg.DBName)
	default:
		port := cfg.DBPort
		if port == 0 {
			port = 5432
		}
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, port, cfg.DBUser, cfg.DBPass, cfg.DBName)
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~\\") {
		return path
	}
	res, err := homedir.Expand(path)
	if err != nil {
		slog.Warn("Cannot expand home directory", "path", path, "error", err)
		return path
	}
	return res
}
