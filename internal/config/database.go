package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the postgres connection used when the sandbox persists games.
type Database struct {
	Username string
	Password string
	Host     string
	Port     uint16
	DBName   string
	SSLMode  string
}

func lookup(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("no %s env variable set", key)
	}
	return value, nil
}

func loadPassword() (string, error) {
	if password, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
		return password, nil
	}

	passwordFile, ok := os.LookupEnv("POSTGRES_PASSWORD_FILE")
	if !ok {
		return "", fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
	}

	data, err := os.ReadFile(passwordFile)
	if err != nil {
		return "", fmt.Errorf("unable to read from password file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func NewDatabase() (*Database, error) {
	var (
		cfg Database
		err error
	)
	if cfg.Username, err = lookup("POSTGRES_USER"); err != nil {
		return nil, err
	}
	if cfg.Password, err = loadPassword(); err != nil {
		return nil, fmt.Errorf("unable to load password: %w", err)
	}
	if cfg.Host, err = lookup("POSTGRES_HOST"); err != nil {
		return nil, err
	}
	if cfg.DBName, err = lookup("POSTGRES_DB"); err != nil {
		return nil, err
	}

	cfg.SSLMode = "disable"
	if sslMode, ok := os.LookupEnv("POSTGRES_SSLMODE"); ok {
		cfg.SSLMode = sslMode
	}

	cfg.Port = 5432
	if portStr, ok := os.LookupEnv("POSTGRES_PORT"); ok {
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unable to parse POSTGRES_PORT: %w", err)
		}
		cfg.Port = uint16(port)
	}

	return &cfg, nil
}

func (c Database) URL() string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// DbURL prefers DATABASE_URL and falls back to the POSTGRES_* variables.
func DbURL() (string, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL, nil
	}

	cfg, err := NewDatabase()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return cfg.URL(), nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, err := DbURL()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(dbURL)
}
