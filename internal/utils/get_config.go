package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort   string `yaml:"APP_PORT"`
	AppURL    string `yaml:"APP_URL"`
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Midtrans configuration
	ClientKey    string `yaml:"CLIENT_KEY"`
	ServerKey    string `yaml:"SERVER_KEY"`
	IsProd       bool   `yaml:"IsProd"`
	PremiumPrice string `yaml:"PREMIUM_PRICE"`
	AgencyPrice  string `yaml:"AGENCY_PRICE"`

	// S3 compatible storage
	AWSS3Bucket     string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region     string `yaml:"AWS_S3_REGION"`
	AWSAccessKey    string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey    string `yaml:"AWS_SECRET_KEY"`
	AWSS3Endpoint   string `yaml:"AWS_S3_ENDPOINT"`
	S3PublicBaseURL string `yaml:"S3_PUBLIC_BASE_URL"`
	MaxUploadBytes  string `yaml:"MAX_UPLOAD_BYTES"`

	// Vision model (OpenAI compatible chat completions)
	VisionAPIKey         string `yaml:"VISION_API_KEY"`
	VisionBaseURL        string `yaml:"VISION_BASE_URL"`
	VisionModel          string `yaml:"VISION_MODEL"`
	VisionMaxTokens      string `yaml:"VISION_MAX_TOKENS"`
	VisionTimeoutSeconds string `yaml:"VISION_TIMEOUT_SECONDS"`
}

var config Config

// LoadConfig reads .env and config.yaml from the working directory. Both are
// optional; values exported in the environment win over the file.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("error loading .env file")
	}

	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Debug().Err(err).Msg("config.yaml not read, using environment only")
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Error().Err(err).Msg("error parsing config.yaml")
		return
	}
}

func GetConfig(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SSLMODE":
		return config.DBSSLMode
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_ISSUER":
		return config.JWTIssuer
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "CLIENT_KEY":
		return config.ClientKey
	case "SERVER_KEY":
		return config.ServerKey
	case "IsProd":
		if config.IsProd {
			return "true"
		}
		return "false"
	case "PREMIUM_PRICE":
		return config.PremiumPrice
	case "AGENCY_PRICE":
		return config.AgencyPrice
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "S3_PUBLIC_BASE_URL":
		return config.S3PublicBaseURL
	case "MAX_UPLOAD_BYTES":
		return config.MaxUploadBytes
	case "VISION_API_KEY":
		return config.VisionAPIKey
	case "VISION_BASE_URL":
		return config.VisionBaseURL
	case "VISION_MODEL":
		return config.VisionModel
	case "VISION_MAX_TOKENS":
		return config.VisionMaxTokens
	case "VISION_TIMEOUT_SECONDS":
		return config.VisionTimeoutSeconds
	default:
		return ""
	}
}

func GetConfigOrDefault(key, fallback string) string {
	if v := GetConfig(key); v != "" {
		return v
	}
	return fallback
}

func GetConfigInt(key string, fallback int) int {
	v := GetConfig(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer config, using default")
		return fallback
	}
	return n
}

func GetConfigSeconds(key string, fallback time.Duration) time.Duration {
	n := GetConfigInt(key, -1)
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
