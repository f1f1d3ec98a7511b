package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Pg            Pg     `yaml:"pg"`
	Port          int    `yaml:"port"`
	LogLevel      string `yaml:"log_level"`
	LogJSON       bool   `yaml:"log_json"`
	SecureCookies bool   `yaml:"secure_cookies"`
	JwtTTLHours   int    `yaml:"jwt_ttl_hours"`

	BoardsPerPage int `yaml:"boards_per_page"` // page size for board listing

	// Usernames that get the admin flag when they register.
	AdminUsernames []string `yaml:"admin_usernames"`

	// Boards with no post activity for this many days get purged by the
	// background sweeper. Zero disables purging entirely.
	PurgeAfterDays       int `yaml:"purge_after_days"`
	PurgeIntervalMinutes int `yaml:"purge_interval_minutes"`

	// Public half of the VAPID key pair, served to clients so they can
	// register push subscriptions.
	VapidPublicKey string `yaml:"vapid_public_key"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey          string `yaml:"jwt_key"`
	VapidPrivateKey string `yaml:"vapid_private_key"`
	VapidEmail      string `yaml:"vapid_email"`
}

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return time.Duration(s.Public.JwtTTLHours) * time.Hour
}

func (s *Config) PurgeInterval() time.Duration {
	return time.Duration(s.Public.PurgeIntervalMinutes) * time.Minute
}

func (s *Config) VapidPrivateKey() string {
	return s.private.VapidPrivateKey
}

func (s *Config) VapidEmail() string {
	return s.private.VapidEmail
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.mustValidate()
	return cfg
}

func (s *Config) mustValidate() {
	if s.private.JwtKey == "" {
		panic("jwt_key is required")
	}
	if s.Public.JwtTTLHours <= 0 {
		panic("jwt_ttl_hours is required")
	}
	if s.Public.BoardsPerPage <= 0 {
		panic("boards_per_page is required")
	}
	if s.Public.PurgeAfterDays < 0 {
		panic(fmt.Sprintf("purge_after_days must be >= 0, got %d", s.Public.PurgeAfterDays))
	}
	if s.Public.PurgeAfterDays > 0 && s.Public.PurgeIntervalMinutes <= 0 {
		panic("purge_interval_minutes is required when purging is enabled")
	}
}
