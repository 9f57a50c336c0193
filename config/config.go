package config

import (
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	Port         string `envconfig:"PORT" default:"5000"`
	URL          string `envconfig:"DB_URI" default:"mongodb://localhost:27017"`
	DatabaseName string `envconfig:"DB_NAME" default:"chatroom"`

	// SweepPeriod is how often the presence sweeper runs; InactivityWindow
	// is how long a participant may stay silent before being evicted.
	SweepPeriod      time.Duration `envconfig:"SWEEP_PERIOD" default:"15s"`
	InactivityWindow time.Duration `envconfig:"INACTIVITY_WINDOW" default:"10s"`

	DefaultPageSize int64 `envconfig:"DEFAULT_PAGE_SIZE" default:"100"`
	MaxPageSize     int64 `envconfig:"MAX_PAGE_SIZE" default:"500"`

	// ValidateRecipient toggles the recipient-existence check on send
	ValidateRecipient bool `envconfig:"VALIDATE_RECIPIENT" default:"true"`
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	conf := &Config{}
	if err := envconfig.Process("", conf); err != nil {
		zap.S().With(err).Error("failed to process environment config")
	}
	return conf
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
