package config

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel slog.Level     `json:"LogLevel" yaml:"logLevel" validate:"required"`
	Listen   string         `json:"Listen" yaml:"listen" validate:"required,hostname_port"`
	Albums   AlbumsConfig   `json:"Albums" yaml:"albums" validate:"required"`
	Sessions SessionsConfig `json:"Sessions" yaml:"sessions" validate:"required"`
	Stats    StatsConfig    `json:"Stats" yaml:"stats" validate:"required"`
	Mail     MailConfig     `json:"Mail" yaml:"mail" validate:"required"`
	Locale   string         `json:"Locale" yaml:"locale" validate:"required,filepath"`
}

type AlbumsConfig struct {
	Storage     StorageConfig `json:"Storage" yaml:"storage" validate:"required"`
	RescanCron  string        `json:"RescanCron" yaml:"rescanCron" validate:"required"`
	PublicNames []string      `json:"PublicNames" yaml:"publicNames" validate:"required,min=1"`
}

type StorageConfig struct {
	Type   string   `json:"Type" yaml:"type" validate:"required,oneof=b2"`
	Config B2Config `json:"Config" yaml:"config" validate:"required"`
}

type B2Config struct {
	BucketName     string `json:"BucketName" yaml:"bucketName" validate:"required,min=1"`
	Prefix         string `json:"Prefix" yaml:"prefix"`
	KeyID          string `json:"KeyID" yaml:"keyID"`
	ApplicationKey string `json:"ApplicationKey" yaml:"applicationKey"`
	PublicBaseURL  string `json:"PublicBaseURL" yaml:"publicBaseURL" validate:"required,url"`
}

type SessionsConfig struct {
	Salt string `json:"Salt" yaml:"salt" validate:"required"`
	TTL  string `json:"TTL" yaml:"ttl" validate:"required"`
}

type StatsConfig struct {
	Type string        `json:"Type" yaml:"type" validate:"required,oneof=sqlite3"`
	Cfg  Sqlite3Config `json:"Config" yaml:"config"`
	Salt string        `json:"Salt" yaml:"salt" validate:"required"`
}

type Sqlite3Config struct {
	DSN string `json:"DSN" yaml:"dsn" validate:"required"`
}

type MailConfig struct {
	MailHost     string `json:"MailHost" yaml:"mailHost" validate:"required"`
	PublicName   string `json:"PublicName" yaml:"publicName" validate:"required"`
	MailAddress  string `json:"MailAddress" yaml:"mailAddress" validate:"required"`
	ContactInbox string `json:"ContactInbox" yaml:"contactInbox" validate:"required"`
	Username     string `json:"Username" yaml:"username" validate:"required"`
	Password     string `json:"Password" yaml:"password" validate:"required"`
}

func LoadConfig(path string, config *Config) error {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	expandedFileBytes := []byte(os.ExpandEnv(string(fileBytes)))

	if err = yaml.Unmarshal(expandedFileBytes, config); err != nil {
		return err
	}

	return nil
}

func InitConfig(path string) (*Config, error) {
	config := &Config{}
	if err := LoadConfig(path, config); err != nil {
		return nil, err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}
