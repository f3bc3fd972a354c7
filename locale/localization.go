package locale

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type LocaleConfig struct {
	Site     SiteConfig     `yaml:"Site" json:"Site"`
	Nav      NavConfig      `yaml:"Nav" json:"Nav"`
	Lightbox LightboxConfig `yaml:"Lightbox" json:"Lightbox"`
	Contact  ContactConfig  `yaml:"Contact" json:"Contact"`
}

type SiteConfig struct {
	Title   string `yaml:"Title" json:"Title"`
	Tagline string `yaml:"Tagline" json:"Tagline"`
}

type NavConfig struct {
	Home      string `yaml:"Home" json:"Home"`
	Galleries string `yaml:"Galleries" json:"Galleries"`
	Contact   string `yaml:"Contact" json:"Contact"`
	MenuLabel string `yaml:"MenuLabel" json:"MenuLabel"`
}

type LightboxConfig struct {
	CloseLabel    string `yaml:"CloseLabel" json:"CloseLabel"`
	PreviousLabel string `yaml:"PreviousLabel" json:"PreviousLabel"`
	NextLabel     string `yaml:"NextLabel" json:"NextLabel"`
	CounterOf     string `yaml:"CounterOf" json:"CounterOf"`
}

type ContactConfig struct {
	Header      string `yaml:"Header" json:"Header"`
	SendButton  string `yaml:"SendButton" json:"SendButton"`
	SentNotice  string `yaml:"SentNotice" json:"SentNotice"`
	OnSendError string `yaml:"OnSendError" json:"OnSendError"`
}

func LoadConfig(path string, config *LocaleConfig) error {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err = yaml.Unmarshal(fileBytes, config); err != nil {
		return err
	}

	return nil
}

func InitConfig(path string) (*LocaleConfig, error) {
	config := &LocaleConfig{}
	if err := LoadConfig(path, config); err != nil {
		return nil, err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}
