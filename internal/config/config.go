package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	// Firebase
	FirebaseProjectID string
	FirebaseCredJSON  string

	// Push Notifications
	PushNotificationsEnabled bool // Enable/disable FCM sends globally (default: true)

	// Reminder cycles
	ReminderWindowMinutes     int    // Look-ahead window for task reminders (default: 60)
	TaskReminderSchedule      string // Cron spec for the task reminder cycle (default: hourly)
	StreakWarningSchedule     string // Cron spec for the streak warning cycle (default: 20:00 daily)
	SchedulerTimezone         string // IANA time zone the cron specs and day boundaries use
	SchedulerEnabled          bool   // If false, cycles run only via the HTTP trigger endpoints
	CycleTimeoutSeconds       int    // Per-cycle deadline for scheduled runs
	WelcomeGracePeriodSeconds int    // Delay before re-reading a newly created user

	// Server
	ServerShutdownTimeoutSeconds int

	// Logging
	LogLevel  string
	LogFormat string
}

var AppConfig *Config

func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),

		// Firebase
		FirebaseProjectID: getEnvOrDefault("FIREBASE_PROJECT_ID", ""),
		FirebaseCredJSON:  getEnvOrDefault("FIREBASE_CRED_JSON", ""),

		// Push Notifications
		PushNotificationsEnabled: getEnvOrDefault("PUSH_NOTIFICATIONS_ENABLED", "true") == "true",

		// Reminder cycles
		ReminderWindowMinutes:     getEnvAsInt("REMINDER_WINDOW_MINUTES", 60),
		TaskReminderSchedule:      getEnvOrDefault("TASK_REMINDER_SCHEDULE", "@every 1h"),
		StreakWarningSchedule:     getEnvOrDefault("STREAK_WARNING_SCHEDULE", "0 20 * * *"),
		SchedulerTimezone:         getEnvOrDefault("SCHEDULER_TIMEZONE", "Asia/Kolkata"),
		SchedulerEnabled:          getEnvOrDefault("SCHEDULER_ENABLED", "true") == "true",
		CycleTimeoutSeconds:       getEnvAsInt("CYCLE_TIMEOUT_SECONDS", 300),
		WelcomeGracePeriodSeconds: getEnvAsInt("WELCOME_GRACE_PERIOD_SECONDS", 5),

		// Server
		ServerShutdownTimeoutSeconds: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 30),

		// Logging
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Invalid integer for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}
