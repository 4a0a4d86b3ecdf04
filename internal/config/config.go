package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/ini.v1"
)

const (
	// DefaultPath is where the daemon looks for its config unless
	// MONITOR_CONFIG overrides it.
	DefaultPath = "/etc/monitor.conf"

	defaultPort          = 3000
	defaultBackupDir     = "/backups"
	defaultBackupProcess = "backup"
)

type InfluxDBConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

type MonitoringConfig struct {
	CheckInterval  time.Duration
	AlertThreshold float64
	BackupDir      string
	BackupProcess  string
}

type ServerConfig struct {
	Port int
}

// Config is loaded once at startup and read-only afterwards. It is shared
// between the scheduler loop and the HTTP handlers without locking.
type Config struct {
	InfluxDB   InfluxDBConfig
	Monitoring MonitoringConfig
	Server     ServerConfig
}

// Path returns the config file location, honoring the MONITOR_CONFIG
// environment override.
func Path() string {
	if p := os.Getenv("MONITOR_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads and validates the INI config file. Missing or malformed
// required keys are errors; the caller treats them as fatal at startup.
func Load(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		Monitoring: MonitoringConfig{
			BackupDir:     defaultBackupDir,
			BackupProcess: defaultBackupProcess,
		},
		Server: ServerConfig{Port: defaultPort},
	}

	influx := file.Section("influxdb")
	cfg.InfluxDB.URL = influx.Key("url").String()
	cfg.InfluxDB.Token = influx.Key("token").String()
	cfg.InfluxDB.Org = influx.Key("org").String()
	cfg.InfluxDB.Bucket = influx.Key("bucket").String()

	for key, value := range map[string]string{
		"url":    cfg.InfluxDB.URL,
		"token":  cfg.InfluxDB.Token,
		"org":    cfg.InfluxDB.Org,
		"bucket": cfg.InfluxDB.Bucket,
	} {
		if value == "" {
			return nil, fmt.Errorf("influxdb.%s is required", key)
		}
	}

	mon := file.Section("monitoring")

	interval, err := mon.Key("check_interval").Int()
	if err != nil {
		return nil, fmt.Errorf("monitoring.check_interval: %w", err)
	}
	if interval <= 0 {
		return nil, errors.New("monitoring.check_interval must be positive")
	}
	cfg.Monitoring.CheckInterval = time.Duration(interval) * time.Second

	threshold, err := mon.Key("alert_threshold").Float64()
	if err != nil {
		return nil, fmt.Errorf("monitoring.alert_threshold: %w", err)
	}
	cfg.Monitoring.AlertThreshold = threshold

	if mon.HasKey("backup_dir") {
		cfg.Monitoring.BackupDir = mon.Key("backup_dir").String()
	}
	if mon.HasKey("backup_process") {
		cfg.Monitoring.BackupProcess = mon.Key("backup_process").String()
	}

	srv := file.Section("server")
	if srv.HasKey("port") {
		port, err := srv.Key("port").Int()
		if err != nil {
			return nil, fmt.Errorf("server.port: %w", err)
		}
		cfg.Server.Port = port
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP surface.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
