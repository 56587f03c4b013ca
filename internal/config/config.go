package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Civil timezone used for attendance dates and the auto-close cutoff.
	Timezone string

	AutoCloseHour           int
	AutoCloseMinute         int
	WatchdogIntervalSeconds int

	TelegramToken  string
	BaseAdminEmail string
}

var instance *AppConfig
var once sync.Once

func GetAppConfig() *AppConfig {
	once.Do(func() {
		instance = &AppConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Infof("no .env file loaded: %s", err.Error())
		}

		instance.Port = getEnv("PORT", "8080")

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		instance.JWTSecret = getEnv("JWT_SECRET", "")
		if instance.JWTSecret == "" {
			logrus.Fatal("could not get jwt secret")
		}

		instance.Timezone = getEnv("TIMEZONE", "Asia/Jakarta")

		instance.AutoCloseHour = int(getEnvAsInt("AUTO_CLOSE_HOUR", 23))
		instance.AutoCloseMinute = int(getEnvAsInt("AUTO_CLOSE_MINUTE", 55))
		instance.WatchdogIntervalSeconds = int(getEnvAsInt("WATCHDOG_INTERVAL_SECONDS", 60))

		// Optional: without a token notifications stay in-app only.
		instance.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")

		instance.BaseAdminEmail = getEnv("BASE_ADMIN_EMAIL", "")
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
