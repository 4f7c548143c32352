package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"restaurant-orders-api/models"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// JWTSecret used to sign tokens, set by Load
var JWTSecret = []byte(getEnv("JWT_SECRET", "restaurant_orders_dev_secret"))

type Config struct {
	Port             string
	GinMode          string
	DBDriver         string // sqlite or postgres
	DBDSN            string
	AuthEnabled      bool
	ItemDeletePolicy string
	AMQPURL          string
	AMQPExchange     string
	LogLevel         string
	LogFormat        string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment, after applying a .env file
// from the working directory when one exists
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	authEnabled, err := strconv.ParseBool(getEnv("AUTH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid AUTH_ENABLED: %w", err)
	}

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		GinMode:          os.Getenv("GIN_MODE"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:            getEnv("DB_DSN", "restaurant_orders.db"),
		AuthEnabled:      authEnabled,
		ItemDeletePolicy: getEnv("ITEM_DELETE_POLICY", "restrict"),
		AMQPURL:          os.Getenv("AMQP_URL"),
		AMQPExchange:     getEnv("AMQP_EXCHANGE", "orders_topic"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", string(JWTSecret)))
	return cfg, nil
}

// SetupLogging configures the process-wide logrus logger
func SetupLogging(cfg Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logrus.SetLevel(level)
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// InitDB opens the configured database and migrates all models
func InitDB(cfg Config) (*gorm.DB, error) {
	gormLogger := logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
	gormConfig := &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		db, err = gorm.Open(sqliteDialector(cfg.DBDSN), gormConfig)
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DBDSN), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// single writer; transactions serialize on the one connection
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	err = db.AutoMigrate(
		&models.Staff{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"driver":      cfg.DBDriver,
		"sqlite_mode": SQLiteBuildMode,
	}).Info("database connected and migrated")
	return db, nil
}
