package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Reminder     ReminderConfig
	Notification NotificationConfig
	Notion       NotionConfig
	Worker       WorkerConfig
	Log          LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ReminderConfig controls how interview dates typed by the user are turned
// into instants. Dates and hours carry no zone, so they are read in Location.
type ReminderConfig struct {
	Timezone string
}

type NotificationConfig struct {
	Timeout time.Duration
}

type NotionConfig struct {
	Token      string
	DatabaseID string
}

type WorkerConfig struct {
	Concurrency  int
	PollInterval time.Duration
	BatchSize    int
}

type LogConfig struct {
	Level string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "offer_tracker"),
		},
		Reminder: ReminderConfig{
			Timezone: getEnv("REMINDER_TIMEZONE", "Local"),
		},
		Notification: NotificationConfig{
			Timeout: getEnvAsDuration("NOTIFICATION_TIMEOUT", "5s"),
		},
		Notion: NotionConfig{
			Token:      getEnv("NOTION_TOKEN", ""),
			DatabaseID: normalizeNotionID(getEnv("NOTION_DB_ID", "")),
		},
		Worker: WorkerConfig{
			Concurrency:  getEnvAsInt("WORKER_CONCURRENCY", 3),
			PollInterval: getEnvAsDuration("REMINDER_POLL_INTERVAL", "10s"),
			BatchSize:    getEnvAsInt("REMINDER_BATCH_SIZE", 50),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// Location resolves REMINDER_TIMEZONE, falling back to the process zone when
// the name is unknown.
func (c *Config) Location() *time.Location {
	if c.Reminder.Timezone == "" || c.Reminder.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Reminder.Timezone)
	if err != nil {
		log.WithError(err).Warnf("Unknown REMINDER_TIMEZONE %q, using local time", c.Reminder.Timezone)
		return time.Local
	}
	return loc
}

// NotionEnabled reports whether offers should be mirrored to Notion.
func (c *Config) NotionEnabled() bool {
	return c.Notion.Token != "" && c.Notion.DatabaseID != ""
}

// SetupLogger applies LOG_LEVEL and picks a formatter for the environment.
func (c *Config) SetupLogger() {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.Server.Env == "production" {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// normalizeNotionID removes dashes if present.
func normalizeNotionID(id string) string {
	id = strings.TrimSpace(id)
	return strings.ReplaceAll(id, "-", "")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
