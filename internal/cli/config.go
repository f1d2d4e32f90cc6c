package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"agency-chatbot/internal/domain"
	"agency-chatbot/internal/knowledge"
)

// Config is the resolved chatcli configuration. Flags override CHATCLI_*
// environment variables, which override the config file.
type Config struct {
	KBPath  string
	NoDelay bool
	Contact domain.Contact
}

// LoadConfig reads path (or .chatcli.yaml in the working directory when path
// is empty) and binds flags. A missing default config file is not an error.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CHATCLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("kb", "")
	v.SetDefault("no_delay", false)
	v.SetDefault("contact.whatsapp_number", "")
	v.SetDefault("contact.email", "")

	if flags != nil {
		if f := flags.Lookup("kb"); f != nil {
			if err := v.BindPFlag("kb", f); err != nil {
				return nil, fmt.Errorf("cli: bind kb flag: %w", err)
			}
		}
		if f := flags.Lookup("no-delay"); f != nil {
			if err := v.BindPFlag("no_delay", f); err != nil {
				return nil, fmt.Errorf("cli: bind no-delay flag: %w", err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".chatcli")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cli: reading config: %w", err)
		}
	}

	return &Config{
		KBPath:  v.GetString("kb"),
		NoDelay: v.GetBool("no_delay"),
		Contact: domain.Contact{
			WhatsAppNumber: v.GetString("contact.whatsapp_number"),
			Email:          v.GetString("contact.email"),
		},
	}, nil
}

// KnowledgeBase loads the configured knowledge base with contact overrides
// applied.
func (c *Config) KnowledgeBase() (*domain.KnowledgeBase, error) {
	kb := knowledge.Default()
	if c.KBPath != "" {
		var err error
		if kb, err = knowledge.LoadFile(c.KBPath); err != nil {
			return nil, err
		}
	}
	return knowledge.WithContact(kb, c.Contact), nil
}

func (c *Config) Source() string {
	if c.KBPath == "" {
		return "built-in"
	}
	return c.KBPath
}
