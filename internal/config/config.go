package config

import (
	"time"

	"github.com/spf13/viper"

	"cottageplayer/internal/utils"
)

type AppConf struct {
	Name           string `mapstructure:"name"`
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type AuthConf struct {
	SessionSecret      string `mapstructure:"session_secret"`
	AllowAutoSignup    bool   `mapstructure:"allow_auto_signup"`
	InitialAdminEmails string `mapstructure:"initial_admin_emails"`
	StateTTLSeconds    int    `mapstructure:"state_ttl_seconds"`
}

// AdminEmails splits the comma separated bootstrap admin list.
func (a AuthConf) AdminEmails() []string {
	return utils.SplitCSV(a.InitialAdminEmails)
}

type GoogleConf struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

type DBConf struct {
	Path string `mapstructure:"path"`
}

type StorageConf struct {
	MediaRoot   string `mapstructure:"media_root"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
}

func (s StorageConf) MaxUploadBytes() int64 { return s.MaxUploadMB * 1024 * 1024 }

// CategoryConf describes one library landing page: which MIME prefixes it
// pre-selects and which configured option name it tries to match against
// playlist options first, then tag options.
type CategoryConf struct {
	Path   string   `mapstructure:"path"`
	Types  []string `mapstructure:"types"`
	Option string   `mapstructure:"option"`
}

type LibraryConf struct {
	TagOptions      []string       `mapstructure:"tag_options"`
	PlaylistOptions []string       `mapstructure:"playlist_options"`
	Categories      []CategoryConf `mapstructure:"categories"`
}

type Config struct {
	App     AppConf     `mapstructure:"app"`
	Auth    AuthConf    `mapstructure:"auth"`
	Google  GoogleConf  `mapstructure:"google"`
	DB      DBConf      `mapstructure:"database"`
	Storage StorageConf `mapstructure:"storage"`
	Library LibraryConf `mapstructure:"library"`
	Log     struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	StateTTL        time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "CottagePlayer"
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 8080
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	if cfg.Storage.MediaRoot == "" {
		cfg.Storage.MediaRoot = "storage/media"
	}
	if cfg.Storage.MaxUploadMB == 0 {
		cfg.Storage.MaxUploadMB = 512
	}
	// the database must not live under the media root, which is served
	if cfg.DB.Path == "" {
		cfg.DB.Path = "storage/cottageplayer.db"
	}
	if cfg.Auth.StateTTLSeconds == 0 {
		cfg.Auth.StateTTLSeconds = 600
	}
	if len(cfg.Library.Categories) == 0 {
		cfg.Library.Categories = DefaultCategories()
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.StateTTL = time.Duration(cfg.Auth.StateTTLSeconds) * time.Second
}

func DefaultCategories() []CategoryConf {
	return []CategoryConf{
		{Path: "music", Types: []string{"audio/"}, Option: "Music"},
		{Path: "movies", Types: []string{"video/"}, Option: "Movies"},
		{Path: "tv", Types: []string{"video/"}, Option: "TV"},
		{Path: "photos", Types: []string{"image/"}, Option: "Photos"},
	}
}
