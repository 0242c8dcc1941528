package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	JWT struct {
		Secret      string `env:"SECRET,required"`
		Expiration  int    `env:"EXPIRATION" envDefault:"1800"`  // 30 menit
		RenewWindow int    `env:"RENEW_WINDOW" envDefault:"600"` // 10 menit
	} `envPrefix:"JWT_"`
	Redis struct {
		Host     string `env:"HOST" envDefault:"localhost"`
		Port     int    `env:"PORT" envDefault:"6379"`
		Password string `env:"PASSWORD"`
	} `envPrefix:"REDIS_"`
	RateLimit struct {
		// Format ulule/limiter, misalnya "30-M" berarti 30 request per menit per IP.
		Public string `env:"PUBLIC" envDefault:"30-M"`
	} `envPrefix:"RATE_LIMIT_"`
	Supabase struct {
		URL           string `env:"URL,required"`
		ServiceKey    string `env:"SERVICE_KEY,required"`
		Bucket        string `env:"BUCKET" envDefault:"ilust_aspirasi"`
		UploadTimeout int    `env:"UPLOAD_TIMEOUT" envDefault:"30"`
	} `envPrefix:"SUPABASE_"`
	Upload struct {
		MaxSize int64 `env:"MAX_SIZE" envDefault:"5242880"` // 5 MiB
	} `envPrefix:"UPLOAD_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// hanya kembalikan error pertama supaya log lebih jelas
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
