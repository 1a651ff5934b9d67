package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"arenoexpress/internal/core/application/usecases/commands"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	SinkLog      = "log"
	SinkKafka    = "kafka"
	SinkRabbitMQ = "rabbitmq"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	StorageDriver   string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	PaymentCoupling string `env:"PAYMENT_COUPLING" envDefault:"at_creation"`
	IDMaxAttempts   int    `env:"ID_MAX_ATTEMPTS" envDefault:"10"`

	NotificationSink          string   `env:"NOTIFICATION_SINK" envDefault:"log"`
	KafkaBrokers              []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaNotificationTopic    string   `env:"KAFKA_NOTIFICATION_TOPIC" envDefault:"shipment.notifications"`
	RabbitMQURL               string   `env:"RABBITMQ_URL"`
	RabbitMQNotificationQueue string   `env:"RABBITMQ_NOTIFICATION_QUEUE" envDefault:"shipment_notifications"`

	OutboxBatchSize   int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	OutboxMaxAttempts int           `env:"OUTBOX_MAX_ATTEMPTS" envDefault:"5"`
	OutboxSchedule    string        `env:"OUTBOX_SCHEDULE" envDefault:"*/5 * * * * *"`
	OutboxRunTimeout  time.Duration `env:"OUTBOX_RUN_TIMEOUT" envDefault:"30s"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the composition root cannot build.
func (c Config) Validate() error {
	var problems []error

	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DBUser == "" || c.DBName == "" {
			problems = append(problems, errors.New("DB_USER and DB_NAME are required for the postgres driver"))
		}
	case StorageDriverMemory:
	default:
		problems = append(problems, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	if _, err := commands.ParsePaymentCoupling(c.PaymentCoupling); err != nil {
		problems = append(problems, fmt.Errorf("PAYMENT_COUPLING: %w", err))
	}
	if c.IDMaxAttempts < 1 {
		problems = append(problems, errors.New("ID_MAX_ATTEMPTS must be positive"))
	}

	switch c.NotificationSink {
	case SinkLog:
	case SinkKafka:
		if len(c.KafkaBrokers) == 0 {
			problems = append(problems, errors.New("KAFKA_BROKERS is required for the kafka sink"))
		}
	case SinkRabbitMQ:
		if c.RabbitMQURL == "" {
			problems = append(problems, errors.New("RABBITMQ_URL is required for the rabbitmq sink"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown NOTIFICATION_SINK %q", c.NotificationSink))
	}

	if _, err := commands.NewRelayNotificationsCommand(c.OutboxBatchSize, c.OutboxMaxAttempts, c.OutboxRunTimeout); err != nil {
		problems = append(problems, fmt.Errorf("OUTBOX_BATCH_SIZE/OUTBOX_MAX_ATTEMPTS/OUTBOX_RUN_TIMEOUT: %w", err))
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).
		Parse(c.OutboxSchedule); err != nil {
		problems = append(problems, fmt.Errorf("OUTBOX_SCHEDULE: %w", err))
	}
	return errors.Join(problems...)
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) KafkaBrokerList() string {
	return strings.Join(c.KafkaBrokers, ",")
}
