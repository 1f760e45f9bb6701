package config

import (
	"errors"
	"flag"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultRunAddress    = ":8080"
	DefaultDatabaseURI   = ""
	DefaultNotifyAddress = "http://localhost:4100"
	DefaultCurrency      = "UAH"
	DefaultPollInterval  = 1 * time.Minute
	DefaultStaleAfter    = 15 * time.Minute
)

type Config struct {
	RunAddress    string        `env:"RUN_ADDRESS"`
	DatabaseURI   string        `env:"DATABASE_URI"`
	NotifyAddress string        `env:"NOTIFY_ADDRESS"`
	Currency      string        `env:"CURRENCY"`
	PollInterval  time.Duration `env:"POLL_INTERVAL"`
	StaleAfter    time.Duration `env:"STALE_AFTER"`

	WayforpayMerchant string `env:"WAYFORPAY_MERCHANT"`
	WayforpayDomain   string `env:"WAYFORPAY_DOMAIN"`
	WayforpaySecret   string `env:"WAYFORPAY_SECRET"`
	PlisioSecret      string `env:"PLISIO_SECRET"`

	ServiceTokenSecret string `env:"SERVICE_TOKEN_SECRET"`
}

func Read() (Config, error) {
	config := Config{}

	flag.StringVar(&config.RunAddress, "a", DefaultRunAddress, "Server run address")
	flag.StringVar(&config.DatabaseURI, "d", DefaultDatabaseURI, "Database connect string")
	flag.StringVar(&config.NotifyAddress, "n", DefaultNotifyAddress, "Notification sink address protocol://hostname:port")
	flag.StringVar(&config.Currency, "c", DefaultCurrency, "Order currency code")
	flag.DurationVar(&config.PollInterval, "i", DefaultPollInterval, "Pending orders poll interval (e.g. 30s, 1m)")
	flag.DurationVar(&config.StaleAfter, "t", DefaultStaleAfter, "Age after which a pending order is re-checked")

	flag.StringVar(&config.WayforpayMerchant, "m", "", "WayForPay merchant account")
	flag.StringVar(&config.WayforpayDomain, "o", "", "WayForPay merchant domain name")
	flag.StringVar(&config.WayforpaySecret, "w", "", "WayForPay merchant secret key")
	flag.StringVar(&config.PlisioSecret, "p", "", "Plisio secret key")

	flag.StringVar(&config.ServiceTokenSecret, "s", "", "Secret key for service-to-service tokens")

	flag.Parse()

	err := env.Parse(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// Validate - секреты шлюзов обязательны: без них проверить подпись коллбека
// невозможно, сервис не должен стартовать.
func (c Config) Validate() error {
	if c.WayforpayMerchant == "" {
		return errors.New("config: WAYFORPAY_MERCHANT is required")
	}
	if c.WayforpaySecret == "" {
		return errors.New("config: WAYFORPAY_SECRET is required")
	}
	if c.PlisioSecret == "" {
		return errors.New("config: PLISIO_SECRET is required")
	}
	if c.ServiceTokenSecret == "" {
		return errors.New("config: SERVICE_TOKEN_SECRET is required")
	}

	return nil
}
