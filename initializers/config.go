package initializers

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName         string
	Port            string
	GinMode         string
	SessionSecret   string
	RecentStudents  int
	ShutdownTimeout time.Duration
	DB              DBConfig
}

type DBConfig struct {
	Driver     string // sqlite or postgres
	SQLitePath string
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	TimeZone   string
}

func LoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
}

// LoadConfig reads the configuration from the environment, falling back to
// defaults suited to a local run on a sqlite file.
func LoadConfig() Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("app_name", "Student Records")
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("session_secret", "change-me-session-secret")
	v.SetDefault("recent_students", 10)
	v.SetDefault("shutdown_timeout", 5*time.Second)

	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("sqlite_path", "student_data.db")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "student_records")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_timezone", "UTC")

	v.AutomaticEnv()

	cfg := Config{
		AppName:         v.GetString("app_name"),
		Port:            v.GetString("port"),
		GinMode:         v.GetString("gin_mode"),
		SessionSecret:   v.GetString("session_secret"),
		RecentStudents:  v.GetInt("recent_students"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		DB: DBConfig{
			Driver:     v.GetString("db_driver"),
			SQLitePath: v.GetString("sqlite_path"),
			Host:       v.GetString("db_host"),
			User:       v.GetString("db_user"),
			Password:   v.GetString("db_password"),
			Name:       v.GetString("db_name"),
			Port:       v.GetString("db_port"),
			SSLMode:    v.GetString("db_sslmode"),
			TimeZone:   v.GetString("db_timezone"),
		},
	}
	if cfg.RecentStudents <= 0 {
		cfg.RecentStudents = 10
	}
	return cfg
}
