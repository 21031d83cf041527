package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port string `envconfig:"APP_PORT" default:"8080"`

	// Escrow account shown on the bank-transfer page. The defaults are
	// the demo storefront's dummy account.
	PaymentAccountName   string `envconfig:"PAYMENT_ACCOUNT_NAME" default:"Noir Essentials Escrow"`
	PaymentAccountNumber string `envconfig:"PAYMENT_ACCOUNT_NUMBER" default:"1234567890"`
	PaymentBankName      string `envconfig:"PAYMENT_BANK_NAME" default:"Access Bank"`

	// Checkout flow timers. TransferTimeout is how long a customer has to
	// complete the bank transfer before the flow backs out; ProcessingDelay
	// is the simulated payment-verification wait.
	TransferTimeout time.Duration `envconfig:"CHECKOUT_TRANSFER_TIMEOUT" default:"10m"`
	ProcessingDelay time.Duration `envconfig:"CHECKOUT_PROCESSING_DELAY" default:"10s"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using process environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
