package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SystemConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DatabaseConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// PushConfig holds the VAPID keypair used to sign web push requests.
type PushConfig struct {
	VapidPublicKey  string `yaml:"vapid_public_key" json:"vapid_public_key"`
	VapidPrivateKey string `yaml:"vapid_private_key" json:"-"`
	Subscriber      string `yaml:"subscriber" json:"subscriber"`
	TTL             int    `yaml:"ttl" json:"ttl"`
}

// StorageConfig selects the blob store backing uploaded images.
// Type is "s3" or "local".
type StorageConfig struct {
	Type      string `yaml:"type" json:"type"`
	Dir       string `yaml:"dir" json:"dir"`
	BaseURL   string `yaml:"base_url" json:"base_url"`
	Region    string `yaml:"region" json:"region"`
	Bucket    string `yaml:"bucket" json:"bucket"`
	PublicURL string `yaml:"public_url" json:"public_url"`
}

type AppConfig struct {
	System   SystemConfig   `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
	Push     PushConfig     `yaml:"push" json:"push"`
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
}

func DefaultConfig() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Appid:    "pairlink",
			Location: "UTC",
			Workdir:  "/var/pairlink",
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 8106,
		},
		Database: DatabaseConfig{
			Type:   "postgres",
			Host:   "127.0.0.1",
			Port:   5432,
			Name:   "pairlink",
			User:   "postgres",
			Passwd: "",
		},
		Logger: LoggerConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/pairlink/pairlink.log",
		},
		Push: PushConfig{
			Subscriber: "mailto:pairlink@example.com",
			TTL:        86400,
		},
		Storage: StorageConfig{
			Type:    "local",
			Dir:     "/var/pairlink/uploads",
			BaseURL: "/uploads",
		},
	}
}

// LoadConfig reads the yaml config file when present and applies environment
// overrides on top of the defaults. A missing file is not an error.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setEnvString(&cfg.System.Workdir, "PAIRLINK_SYSTEM_WORKDIR")
	setEnvString(&cfg.System.Location, "PAIRLINK_SYSTEM_LOCATION")
	setEnvBool(&cfg.System.Debug, "PAIRLINK_SYSTEM_DEBUG")
	setEnvString(&cfg.Web.Host, "PAIRLINK_WEB_HOST")
	setEnvInt(&cfg.Web.Port, "PAIRLINK_WEB_PORT")
	setEnvString(&cfg.Database.Type, "PAIRLINK_DB_TYPE")
	setEnvString(&cfg.Database.Host, "PAIRLINK_DB_HOST")
	setEnvInt(&cfg.Database.Port, "PAIRLINK_DB_PORT")
	setEnvString(&cfg.Database.Name, "PAIRLINK_DB_NAME")
	setEnvString(&cfg.Database.User, "PAIRLINK_DB_USER")
	setEnvString(&cfg.Database.Passwd, "PAIRLINK_DB_PASSWD")
	setEnvString(&cfg.Logger.Mode, "PAIRLINK_LOGGER_MODE")
	setEnvString(&cfg.Push.VapidPublicKey, "VAPID_PUBLIC_KEY")
	setEnvString(&cfg.Push.VapidPrivateKey, "VAPID_PRIVATE_KEY")
	setEnvString(&cfg.Push.Subscriber, "VAPID_SUBSCRIBER")
	setEnvString(&cfg.Storage.Type, "PAIRLINK_STORAGE_TYPE")
	setEnvString(&cfg.Storage.Dir, "PAIRLINK_STORAGE_DIR")
	setEnvString(&cfg.Storage.BaseURL, "PAIRLINK_STORAGE_BASE_URL")
	setEnvString(&cfg.Storage.Region, "PAIRLINK_S3_REGION")
	setEnvString(&cfg.Storage.Bucket, "PAIRLINK_S3_BUCKET")
	setEnvString(&cfg.Storage.PublicURL, "PAIRLINK_S3_PUBLIC_URL")
}

func setEnvString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setEnvInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = cast.ToInt(v)
	}
}

func setEnvBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = cast.ToBool(v)
	}
}
