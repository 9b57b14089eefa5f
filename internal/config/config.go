package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		// Mode switches zap between development and production encoders.
		Mode string `yaml:"mode"`

		HTTPAddr     string `yaml:"httpAddr"`
		DatabasePath string `yaml:"databasePath"`

		// JWTSecret signs customer and staff session tokens.
		JWTSecret string `yaml:"jwtSecret"`

		// BackupTriggerSecret is the shared secret accepted by the auto
		// backup trigger endpoint for external cron invocations.
		BackupTriggerSecret string `yaml:"backupTriggerSecret"`

		CommerceAPIBaseURL string `yaml:"commerceApiBaseUrl"`
		CommerceAPIToken   string `yaml:"commerceApiToken"`

		// ObjectStorage is optional; when absent backup archives are written
		// to the local file system.
		ObjectStorage *ObjectStorageConfig `yaml:"objectStorage"`

		ServerSSLCertFile string `yaml:"serverSslCertFile"`
		ServerSSLKeyFile  string `yaml:"serverSslKeyFile"`
	}

	ObjectStorageConfig struct {
		Endpoint    string `yaml:"endpoint"`
		AccessKeyID string `yaml:"accessKeyId"`
		SecretKey   string `yaml:"secretKey"`
		Region      string `yaml:"region"`
	}
)

// New builds the configuration from the environment. A .env file in the
// working directory is applied first when present, then an optional YAML file
// named by RESALE_CONFIG overrides individual fields.
func New() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Mode:                getEnv("MODE", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8086"),
		DatabasePath:        getEnv("DATABASE_PATH", "/var/resale/data/database.db"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		BackupTriggerSecret: os.Getenv("BACKUP_TRIGGER_SECRET"),
		CommerceAPIBaseURL:  os.Getenv("COMMERCE_API_BASE_URL"),
		CommerceAPIToken:    os.Getenv("COMMERCE_API_TOKEN"),
		ServerSSLCertFile:   os.Getenv("SERVER_SSL_CERT_FILE"),
		ServerSSLKeyFile:    os.Getenv("SERVER_SSL_KEY_FILE"),
	}

	if endpoint := os.Getenv("OBJECT_STORAGE_ENDPOINT"); endpoint != "" {
		cfg.ObjectStorage = &ObjectStorageConfig{
			Endpoint:    endpoint,
			AccessKeyID: os.Getenv("OBJECT_STORAGE_ACCESS_KEY_ID"),
			SecretKey:   os.Getenv("OBJECT_STORAGE_SECRET_KEY"),
			Region:      os.Getenv("OBJECT_STORAGE_REGION"),
		}
	}

	if path := os.Getenv("RESALE_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(content, c)
}

func (c Config) HasTLSConfig() bool {
	return c.ServerSSLCertFile != "" && c.ServerSSLKeyFile != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
