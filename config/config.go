package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/n8hotnews-a11y/Smart-Frigde/utils"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port string

	JWTSecret      string
	FirebaseAPIKey string

	GeminiAPIKey string
	GeminiModel  string

	// Two independent expiry windows: the notification window and the
	// critical/warning split for card coloring.
	ExpirySoonDays     int
	ExpiryCriticalDays int
	ExpiryWarningDays  int

	AWSRegion string
	S3Bucket  string
	SNSFCMArn string
	SESEmail  string

	DevSeed bool
}

var App *Config

func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading from environment")
	}

	App = &Config{
		Port:               getEnv("PORT", "8080"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		FirebaseAPIKey:     os.Getenv("FIREBASE_API_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		ExpirySoonDays:     getEnvInt("EXPIRY_SOON_DAYS", utils.DefaultSoonDays),
		ExpiryCriticalDays: getEnvInt("EXPIRY_CRITICAL_DAYS", utils.DefaultCriticalDays),
		ExpiryWarningDays:  getEnvInt("EXPIRY_WARN_DAYS", utils.DefaultWarningDays),
		AWSRegion:          os.Getenv("AWS_REGION"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		SNSFCMArn:          os.Getenv("SNS_FCM_ARN"),
		SESEmail:           os.Getenv("SES_EMAIL"),
		DevSeed:            getEnv("DEV_SEED", "false") == "true",
	}

	if App.JWTSecret == "" {
		log.Println("warning: JWT_SECRET not set, protected routes will reject everything")
	}
	if App.GeminiAPIKey == "" {
		log.Println("warning: GEMINI_API_KEY not set, AI features disabled")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
