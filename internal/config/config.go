package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the config as a GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// KafkaConfig holds event streaming settings.
type KafkaConfig struct {
	Brokers      []string
	BookingTopic string
}

// ServiceConfig holds all configuration for the rental service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    DatabaseConfig
	KafkaConfig KafkaConfig
}

// Load reads configuration from RENTAL_-prefixed environment variables with
// local-development defaults.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("RENTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("service_port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "rental")
	v.SetDefault("db_password", "rental")
	v.SetDefault("db_name", "rental")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_booking_topic", "rental.booking.events")

	port := v.GetString("service_port")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:   port,
		AppEnv: v.GetString("app_env"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetInt("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:      strings.Split(v.GetString("kafka_brokers"), ","),
			BookingTopic: v.GetString("kafka_booking_topic"),
		},
	}, nil
}
