package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	API     API     `envPrefix:"API_"`
	Session Session `envPrefix:"SESSION_"`
	Upload  Upload  `envPrefix:"UPLOAD_"`
}

// API points at the remote storefront REST API that owns all data.
type API struct {
	URL     string        `env:"URL" envDefault:"http://localhost:5000/api"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type Session struct {
	DBPath string `env:"DB_PATH" envDefault:"backoffice-session.db"`
}

type Upload struct {
	// Dir receives image bytes when the remote upload endpoint is
	// unavailable. Development fallback only.
	Dir string `env:"DIR" envDefault:"uploads"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
