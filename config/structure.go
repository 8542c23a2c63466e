package config

import "time"

// Config is the root configuration structure for the application.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Paths    PathsConfig    `koanf:"paths"`
}

type AppConfig struct {
	Name    string `koanf:"name"`
	Version string `koanf:"version"`
	Env     string `koanf:"env"`
	Debug   bool   `koanf:"debug"`
}

// DatabaseConfig carries the connection settings for the PostgreSQL
// backend. Host, Database, Username, and Password have no defaults and
// are all required.
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"ssl_mode"`

	MaxConns        int           `koanf:"max_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// PathsConfig controls project-root discovery and page resolution.
type PathsConfig struct {
	RootMarker string `koanf:"root_marker"` // file that marks the project root, e.g. "go.mod"
	Pages      string `koanf:"pages"`       // pages directory relative to the root
}
