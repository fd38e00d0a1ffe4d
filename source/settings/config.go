package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_ENV  = "ATOMIC_CONFIG"
	CONFIG_FILE = ".atomic.yml"
)

// Config is the parsed contents of the user's .atomic.yml.
type Config struct {
	Prompt  string        `yaml:"prompt"`
	Color   bool          `yaml:"color"`
	Trace   TraceConfig   `yaml:"trace"`
	History HistoryConfig `yaml:"history"`
}

type TraceConfig struct {
	Lexer  bool `yaml:"lexer"`
	Parser bool `yaml:"parser"`
}

// HistoryConfig says where the REPL keeps its history. Driver is one of the names accepted by
// history.Open; an empty Driver turns persistent history off.
type HistoryConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Limit  int    `yaml:"limit"`
}

func DefaultConfig() *Config {
	return &Config{
		Prompt: "=> ",
		Color:  true,
		History: HistoryConfig{
			Driver: "SQLite",
			DSN:    "~/.atomic_history.db",
			Limit:  1000,
		},
	}
}

// ConfigPath is $ATOMIC_CONFIG if that is set, otherwise ~/.atomic.yml.
func ConfigPath() string {
	if p := os.Getenv(CONFIG_ENV); p != "" {
		return p
	}
	home, e := os.UserHomeDir()
	if e != nil {
		return CONFIG_FILE
	}
	return filepath.Join(home, CONFIG_FILE)
}

// LoadConfig reads the config file at path over the defaults. A file that doesn't exist is
// not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, e := os.ReadFile(path)
	if e != nil {
		if os.IsNotExist(e) {
			cfg.History.DSN = ExpandHome(cfg.History.DSN)
			return cfg, nil
		}
		return cfg, errors.Wrapf(e, "reading config %s", path)
	}
	if e := yaml.Unmarshal(data, cfg); e != nil {
		return DefaultConfig(), errors.Wrapf(e, "parsing config %s", path)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultConfig().Prompt
	}
	if cfg.History.Limit <= 0 {
		cfg.History.Limit = DefaultConfig().History.Limit
	}
	cfg.History.DSN = ExpandHome(cfg.History.DSN)
	return cfg, nil
}

// Apply switches the tracing on if the config asks for it.
func (cfg *Config) Apply() {
	SHOW_LEXER = cfg.Trace.Lexer
	SHOW_PARSER = cfg.Trace.Parser
	if SHOW_LEXER || SHOW_PARSER {
		log.SetLevel(log.DebugLevel)
	}
}

func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, e := os.UserHomeDir()
	if e != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
