// Package config loads the gateway settings from a YAML file, then lets a
// .env file and the process environment override individual keys.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when none is given on the command line.
const DefaultPath = "internal/admin/config/config.yaml"

// Config struct for YAML configuration
type Config struct {
	GRPCPort     int      `yaml:"GRPC_PORT"`
	HTTPPort     int      `yaml:"HTTP_PORT"`
	DBHost       string   `yaml:"DB_HOST"`
	DBPort       int      `yaml:"DB_PORT"`
	DBUser       string   `yaml:"DB_USER"`
	DBPassword   string   `yaml:"DB_PASSWORD"`
	DBName       string   `yaml:"DB_NAME"`
	DBSSLMode    string   `yaml:"DB_SSLMODE"`
	KafkaBrokers []string `yaml:"KAFKA_BROKERS"`
	JWTSecret    string   `yaml:"JWT_SECRET"`
	Topic        string   `yaml:"TOPIC"`
}

// Load reads the YAML file at path and applies overrides. Values from
// envFiles lose to variables already set in the process environment.
func Load(path string, envFiles ...string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	dotenv := map[string]string{}
	if len(envFiles) > 0 {
		dotenv, err = godotenv.Read(envFiles...)
		if err != nil {
			return nil, fmt.Errorf("read env file: %w", err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.override(lookup); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) override(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DB_HOST":     &c.DBHost,
		"DB_USER":     &c.DBUser,
		"DB_PASSWORD": &c.DBPassword,
		"DB_NAME":     &c.DBName,
		"DB_SSLMODE":  &c.DBSSLMode,
		"JWT_SECRET":  &c.JWTSecret,
		"TOPIC":       &c.Topic,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"GRPC_PORT": &c.GRPCPort,
		"HTTP_PORT": &c.HTTPPort,
		"DB_PORT":   &c.DBPort,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
	}

	// Comma separated; an empty value disables Kafka.
	if v, ok := lookup("KAFKA_BROKERS"); ok {
		c.KafkaBrokers = nil
		for _, broker := range strings.Split(v, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				c.KafkaBrokers = append(c.KafkaBrokers, broker)
			}
		}
	}
	return nil
}

// Validate reports settings the gateway cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.GRPCPort <= 0 || c.HTTPPort <= 0 {
		errs = append(errs, errors.New("GRPC_PORT and HTTP_PORT must be positive"))
	}
	if c.GRPCPort == c.HTTPPort {
		errs = append(errs, errors.New("GRPC_PORT and HTTP_PORT must differ"))
	}
	if len(c.KafkaBrokers) > 0 && c.Topic == "" {
		errs = append(errs, errors.New("TOPIC is required when KAFKA_BROKERS is set"))
	}
	return errors.Join(errs...)
}
