package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	SnapshotFile   = "file"
	SnapshotMemory = "memory"
	SnapshotRedis  = "redis"
	SnapshotS3     = "s3"
	SnapshotPg     = "pg"

	PasswordPlain  = "plain"
	PasswordBcrypt = "bcrypt"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Addr            string        `yaml:"addr" validate:"required"`
	LogLevel        string        `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	LogJSON         bool          `yaml:"log_json"`
	JwtTTL          time.Duration `yaml:"jwt_ttl" validate:"gte=0"` // 0 - tokens never expire
	ThreadsPageSize int           `yaml:"threads_page_size" validate:"gte=1"`
	PasswordStorage string        `yaml:"password_storage" validate:"oneof=plain bcrypt"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	SecureHeaders   bool          `yaml:"secure_headers"` // adds HSTS, enable behind https
	AuthRateLimit   float64       `yaml:"auth_rate_limit" validate:"gte=0"` // login/register per second per IP, 0 - off
	Snapshot        Snapshot      `yaml:"snapshot"`
}

type Snapshot struct {
	Backend string `yaml:"backend" validate:"oneof=file memory redis s3 pg"`
	Path    string `yaml:"path" validate:"required_if=Backend file"`
	Redis   Redis  `yaml:"redis"`
	S3      S3     `yaml:"s3"`
	Pg      Pg     `yaml:"pg"`
}

type Redis struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
}

type S3 struct {
	Endpoint string `yaml:"endpoint"`
	Bucket   string `yaml:"bucket"`
	Object   string `yaml:"object"`
	UseSSL   bool   `yaml:"use_ssl"`
}

type Pg struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Dbname string `yaml:"dbname"`
	Name   string `yaml:"name"` // snapshot row name
}

type Private struct {
	JwtKey      string `yaml:"jwt_key" validate:"required"`
	PgPassword  string `yaml:"pg_password"`
	S3AccessKey string `yaml:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

// Default returns a config that runs out of the box with a file snapshot in
// the working directory. Only the jwt key has to be provided.
func Default() Public {
	return Public{
		Addr:            ":5005",
		LogLevel:        "info",
		ThreadsPageSize: 5,
		PasswordStorage: PasswordPlain,
		CORSOrigins:     []string{"*"},
		Snapshot: Snapshot{
			Backend: SnapshotFile,
			Path:    "database.json",
			Redis:   Redis{Key: "forum:snapshot"},
			S3:      S3{Object: "forum/database.json"},
			Pg:      Pg{Port: 5432, Name: "default"},
		},
	}
}

func loadPath(configPath string, output interface{}) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %s", configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads public.yaml and private.yaml from configFolder. Values missing in
// public.yaml keep their defaults.
func Load(configFolder string) (*Config, error) {
	public := Default()
	if err := loadPath(path.Join(configFolder, "public.yaml"), &public); err != nil {
		return nil, err
	}

	var private Private
	if err := loadPath(path.Join(configFolder, "private.yaml"), &private); err != nil {
		return nil, err
	}

	cfg := &Config{Public: public, Private: private}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
