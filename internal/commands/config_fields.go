package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"pkdindustries/dachat/internal/config"
)

// configField defines how to get and set a configuration value
type configField struct {
	setter func(*config.Configuration, string) error
	getter func(*config.Configuration) string
}

// configFields maps parameter names to their handlers
var configFields = map[string]configField{
	"model": {
		setter: func(c *config.Configuration, v string) error { c.Model.Model = v; return nil },
		getter: func(c *config.Configuration) string { return c.Model.Model },
	},
	"maxtokens": {
		setter: func(c *config.Configuration, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for maxtokens. Please provide a valid integer")
			}
			c.Model.MaxTokens = n
			return nil
		},
		getter: func(c *config.Configuration) string { return fmt.Sprintf("%d", c.Model.MaxTokens) },
	},
	"temperature": {
		setter: func(c *config.Configuration, v string) error {
			f, err := strconv.ParseFloat(v, 32)
			if err != nil {
				return fmt.Errorf("invalid value for temperature. Please provide a valid float")
			}
			c.Model.Temperature = float32(f)
			return nil
		},
		getter: func(c *config.Configuration) string { return fmt.Sprintf("%f", c.Model.Temperature) },
	},
	"thinking": {
		setter: func(c *config.Configuration, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for thinking. Please provide 'true' or 'false'")
			}
			c.Model.Thinking = b
			return nil
		},
		getter: func(c *config.Configuration) string { return fmt.Sprintf("%t", c.Model.Thinking) },
	},
	"imagemodel": {
		setter: func(c *config.Configuration, v string) error { c.Model.ImageModel = v; return nil },
		getter: func(c *config.Configuration) string { return c.Model.ImageModel },
	},
	"imagedir": {
		setter: func(c *config.Configuration, v string) error { c.Chat.ImageDir = v; return nil },
		getter: func(c *config.Configuration) string { return c.Chat.ImageDir },
	},
	"apitimeout": {
		setter: func(c *config.Configuration, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid value for apitimeout. Please provide a valid duration (e.g. 30s, 5m)")
			}
			c.API.Timeout = d
			return nil
		},
		getter: func(c *config.Configuration) string { return c.API.Timeout.String() },
	},
	"webtimeout": {
		setter: func(c *config.Configuration, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid value for webtimeout. Please provide a valid duration (e.g. 10s, 1m)")
			}
			c.Chat.WebTimeout = d
			return nil
		},
		getter: func(c *config.Configuration) string { return c.Chat.WebTimeout.String() },
	},
	"sessionduration": {
		setter: func(c *config.Configuration, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid value for sessionduration. Please provide a valid duration (e.g. 10m, 1h)")
			}
			c.Session.TTL = d
			return nil
		},
		getter: func(c *config.Configuration) string { return c.Session.TTL.String() },
	},
	"sessionhistory": {
		setter: func(c *config.Configuration, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for sessionhistory. Please provide a valid integer")
			}
			c.Session.MaxHistory = n
			return nil
		},
		getter: func(c *config.Configuration) string { return fmt.Sprintf("%d", c.Session.MaxHistory) },
	},
	"openaiurl": {
		setter: func(c *config.Configuration, v string) error { c.API.OpenAIURL = v; return nil },
		getter: func(c *config.Configuration) string { return c.API.OpenAIURL },
	},
	"ollamaurl": {
		setter: func(c *config.Configuration, v string) error { c.API.OllamaURL = v; return nil },
		getter: func(c *config.Configuration) string { return c.API.OllamaURL },
	},
	"openaikey": {
		setter: func(c *config.Configuration, v string) error { c.API.OpenAIKey = v; return nil },
		getter: func(c *config.Configuration) string { return maskAPIKey(c.API.OpenAIKey) },
	},
	"anthropickey": {
		setter: func(c *config.Configuration, v string) error { c.API.AnthropicKey = v; return nil },
		getter: func(c *config.Configuration) string { return maskAPIKey(c.API.AnthropicKey) },
	},
	"geminikey": {
		setter: func(c *config.Configuration, v string) error { c.API.GeminiKey = v; return nil },
		getter: func(c *config.Configuration) string { return maskAPIKey(c.API.GeminiKey) },
	},
	"ollamakey": {
		setter: func(c *config.Configuration, v string) error { c.API.OllamaKey = v; return nil },
		getter: func(c *config.Configuration) string { return maskAPIKey(c.API.OllamaKey) },
	},
}

// getConfigKeys returns all available config keys
func getConfigKeys() []string {
	keys := make([]string, 0, len(configFields)+1)
	for k := range configFields {
		keys = append(keys, k)
	}
	keys = append(keys, "instructions")
	sort.Strings(keys)
	return keys
}

// maskAPIKey returns a masked version of an API key showing only first 4 chars
func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}
