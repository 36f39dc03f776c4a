package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EquipmentRoute maps a set of requirement tags to the team that prepares that equipment.
type EquipmentRoute struct {
	Name      string   `mapstructure:"name"`
	Tags      []string `mapstructure:"tags"`
	Recipient string   `mapstructure:"recipient"`
	Subject   string   `mapstructure:"subject"`
}

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	LogFile           string        `mapstructure:"LOG_FILE"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       []string      `mapstructure:"CORS_ORIGINS"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTTTL            time.Duration `mapstructure:"JWT_TTL"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisOTPDB    int    `mapstructure:"REDIS_OTP_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Notification delivery.
	NotifyMode      string `mapstructure:"NOTIFY_MODE"` // queue, pool or log
	NotifyWorkers   int    `mapstructure:"NOTIFY_WORKERS"`
	SMTPHost        string `mapstructure:"SMTP_HOST"`
	SMTPPort        int    `mapstructure:"SMTP_PORT"`
	SMTPUser        string `mapstructure:"SMTP_USER"`
	SMTPPassword    string `mapstructure:"SMTP_PASSWORD"`
	MailFrom        string `mapstructure:"MAIL_FROM"`
	AdminEmail      string `mapstructure:"ADMIN_EMAIL"`
	CameraTeamEmail string `mapstructure:"CAMERA_TEAM_EMAIL"`
	AudioTeamEmail  string `mapstructure:"AUDIO_TEAM_EMAIL"`

	EquipmentRoutes []EquipmentRoute `mapstructure:"EQUIPMENT_ROUTES"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables always win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "auditorium")
	viper.SetDefault("JWT_TTL", "24h")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_OTP_DB", 2)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("NOTIFY_MODE", "pool")
	viper.SetDefault("NOTIFY_WORKERS", 4)
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MAIL_FROM", "Auditorium Booking <no-reply@localhost>")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	AppConfig.CORSOrigins = splitList(AppConfig.CORSOrigins)
	if len(AppConfig.EquipmentRoutes) == 0 {
		AppConfig.EquipmentRoutes = DefaultEquipmentRoutes(AppConfig.CameraTeamEmail, AppConfig.AudioTeamEmail)
	}
	if AppConfig.JWTSecret == "" {
		if IsProduction() {
			log.Fatal("JWT_SECRET must be set in production")
		}
		log.Println("JWT_SECRET not set, using an insecure development secret")
		AppConfig.JWTSecret = "auditorium-dev-secret"
	}
}

// DefaultEquipmentRoutes builds the camera and audio routes used when config.yaml defines none.
// Routes with an empty recipient are skipped by the booking service.
func DefaultEquipmentRoutes(cameraTeam, audioTeam string) []EquipmentRoute {
	return []EquipmentRoute{
		{
			Name:      "camera",
			Tags:      []string{"camera"},
			Recipient: cameraTeam,
			Subject:   "Camera Required for Approved Event",
		},
		{
			Name:      "audio",
			Tags:      []string{"mic", "speakers"},
			Recipient: audioTeam,
			Subject:   "Mic/Speakers Required for Approved Event",
		},
	}
}

// splitList accepts both a YAML list and a comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
