package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

type Configuration struct {
	Chat    *ChatConfig
	Model   *ModelConfig
	Session *SessionConfig
	API     *APIConfig
}

type ChatConfig struct {
	Verbose      bool
	Instructions string
	ImageDir     string
	ProfilePath  string
	WebTimeout   time.Duration
}

type ModelConfig struct {
	Model       string
	MaxTokens   int
	Temperature float32
	Thinking    bool
	ImageModel  string
}

type SessionConfig struct {
	MaxHistory int
	TTL        time.Duration
}

type APIConfig struct {
	Timeout      time.Duration
	OpenAIKey    string
	OpenAIURL    string
	AnthropicKey string
	GeminiKey    string
	OllamaURL    string
	OllamaKey    string
}

// YamlSource implements cli.ValueSource for a map loaded from YAML
type YamlSource struct {
	data map[string]any
	key  string
}

func (y *YamlSource) Lookup() (string, bool) {
	if v, ok := y.data[y.key]; ok {
		if slice, ok := v.([]any); ok {
			var strs []string
			for _, item := range slice {
				strs = append(strs, fmt.Sprintf("%v", item))
			}
			return strings.Join(strs, ","), true
		}
		return fmt.Sprintf("%v", v), true
	}
	return "", false
}

func (y *YamlSource) String() string   { return "yaml" }
func (y *YamlSource) GoString() string { return "yaml" }

func GetFlags() []cli.Flag {
	// Pre-parse config path
	configPath := getConfigPath()
	var configData map[string]any
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err == nil {
			_ = yaml.Unmarshal(data, &configData)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config file %s: %v\n", configPath, err)
		}
	}

	// Helper to create sources: EnvVar > YAML > Default
	src := func(key string, env ...string) cli.ValueSourceChain {
		chain := cli.ValueSourceChain{}
		for _, e := range env {
			chain.Chain = append(chain.Chain, cli.EnvVar(e))
		}
		if configData != nil {
			chain.Chain = append(chain.Chain, &YamlSource{data: configData, key: key})
		}
		return chain
	}

	return []cli.Flag{
		// Config file
		&cli.StringFlag{Name: "config", Aliases: []string{"b"}, Usage: "use the named configuration file", Sources: cli.EnvVars("DACHAT_CONFIG")},

		// Chat behavior
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"V"}, Usage: "enable verbose logging of sessions and configuration", Sources: src("verbose", "DACHAT_VERBOSE")},
		&cli.StringFlag{Name: "instructions", Aliases: []string{"i"}, Value: "you are a helpful assistant.", Usage: "system instructions for the model session", Sources: src("instructions", "DACHAT_INSTRUCTIONS")},
		&cli.StringFlag{Name: "imagedir", Value: defaultImageDir(), Usage: "directory for images produced by the image tool", Sources: src("imagedir", "DACHAT_IMAGEDIR")},
		&cli.StringFlag{Name: "profilepath", Value: defaultProfilePath(), Usage: "path to the yaml health profile read by the profile tool", Sources: src("profilepath", "DACHAT_PROFILEPATH")},
		&cli.DurationFlag{Name: "webtimeout", Value: 10 * time.Second, Usage: "timeout for web page fetches by the webmeta tool", Sources: src("webtimeout", "DACHAT_WEBTIMEOUT")},

		// Model Configuration
		&cli.StringFlag{Name: "model", Value: "ollama/llama3.2", Usage: "model to be used for responses", Sources: src("model", "DACHAT_MODEL")},
		&cli.IntFlag{Name: "maxtokens", Value: 4096, Usage: "maximum number of tokens to generate", Sources: src("maxtokens", "DACHAT_MAXTOKENS")},
		&cli.FloatFlag{Name: "temperature", Value: 0.7, Usage: "temperature for the completion", Sources: src("temperature", "DACHAT_TEMPERATURE")},
		&cli.BoolFlag{Name: "thinking", Usage: "enable thinking/reasoning for models that support it", Sources: src("thinking", "DACHAT_THINKING")},
		&cli.StringFlag{Name: "imagemodel", Value: "gemini-2.5-flash-image", Usage: "image-capable model used by the image tool", Sources: src("imagemodel", "DACHAT_IMAGEMODEL")},

		// API Configuration
		&cli.DurationFlag{Name: "apitimeout", Aliases: []string{"t"}, Value: time.Minute * 5, Usage: "timeout for each completion request", Sources: src("apitimeout", "DACHAT_APITIMEOUT")},
		&cli.StringFlag{Name: "openaikey", Usage: "OpenAI API key", Sources: src("openaikey", "DACHAT_OPENAIKEY")},
		&cli.StringFlag{Name: "openaiurl", Usage: "OpenAI API URL (for custom endpoints)", Sources: src("openaiurl", "DACHAT_OPENAIURL")},
		&cli.StringFlag{Name: "anthropickey", Usage: "Anthropic API key", Sources: src("anthropickey", "DACHAT_ANTHROPICKEY")},
		&cli.StringFlag{Name: "geminikey", Usage: "Google Gemini API key", Sources: src("geminikey", "DACHAT_GEMINIKEY")},
		&cli.StringFlag{Name: "ollamaurl", Value: "http://localhost:11434", Usage: "Ollama API URL", Sources: src("ollamaurl", "DACHAT_OLLAMAURL")},
		&cli.StringFlag{Name: "ollamakey", Usage: "Ollama API key (Bearer token for authentication)", Sources: src("ollamakey", "DACHAT_OLLAMAKEY")},

		// Session behavior
		&cli.DurationFlag{Name: "sessionduration", Aliases: []string{"S"}, Value: time.Minute * 10, Usage: "message context will be cleared after it is unused for this duration", Sources: src("sessionduration", "DACHAT_SESSIONDURATION")},
		&cli.IntFlag{Name: "sessionhistory", Aliases: []string{"H"}, Value: 250, Usage: "maximum number of lines of context to keep per session", Sources: src("sessionhistory", "DACHAT_SESSIONHISTORY")},
	}
}

func getConfigPath() string {
	// Check env first
	if v := os.Getenv("DACHAT_CONFIG"); v != "" {
		return v
	}
	// Check args
	for i, arg := range os.Args {
		if arg == "--config" || arg == "-b" {
			if i+1 < len(os.Args) {
				return os.Args[i+1]
			}
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

func defaultImageDir() string {
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "dachat", "images")
	}
	return filepath.Join(os.TempDir(), "dachat-images")
}

func defaultProfilePath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".dachat", "profile.yaml")
	}
	return "profile.yaml"
}

func (c *Configuration) PrintConfig() {
	fmt.Printf("model: %s\n", c.Model.Model)
	fmt.Printf("maxtokens: %d\n", c.Model.MaxTokens)
	fmt.Printf("temperature: %f\n", c.Model.Temperature)
	fmt.Printf("thinking: %t\n", c.Model.Thinking)
	fmt.Printf("imagemodel: %s\n", c.Model.ImageModel)
	fmt.Printf("instructions: %s\n", c.Chat.Instructions)
	fmt.Printf("imagedir: %s\n", c.Chat.ImageDir)
	fmt.Printf("profilepath: %s\n", c.Chat.ProfilePath)
	fmt.Printf("webtimeout: %s\n", c.Chat.WebTimeout)
	fmt.Printf("verbose: %t\n", c.Chat.Verbose)
	fmt.Printf("sessionduration: %s\n", c.Session.TTL)
	fmt.Printf("sessionhistory: %d\n", c.Session.MaxHistory)
	fmt.Printf("apitimeout: %s\n", c.API.Timeout)
	fmt.Printf("openaikey: %s\n", maskKey(c.API.OpenAIKey))
	fmt.Printf("anthropickey: %s\n", maskKey(c.API.AnthropicKey))
	fmt.Printf("geminikey: %s\n", maskKey(c.API.GeminiKey))
	fmt.Printf("openaiurl: %s\n", c.API.OpenAIURL)
	fmt.Printf("ollamaurl: %s\n", c.API.OllamaURL)
}

func maskKey(key string) string {
	if len(key) > 3 {
		return strings.Repeat("*", len(key)-3) + key[len(key)-3:]
	}
	return key
}

func NewConfiguration(c *cli.Command) *Configuration {
	if c.IsSet("config") {
		slog.Info("using config file", "path", c.String("config"))
	}

	return &Configuration{
		Chat: &ChatConfig{
			Verbose:      c.Bool("verbose"),
			Instructions: c.String("instructions"),
			ImageDir:     c.String("imagedir"),
			ProfilePath:  c.String("profilepath"),
			WebTimeout:   c.Duration("webtimeout"),
		},
		Model: &ModelConfig{
			Model:       c.String("model"),
			MaxTokens:   c.Int("maxtokens"),
			Temperature: float32(c.Float("temperature")),
			Thinking:    c.Bool("thinking"),
			ImageModel:  c.String("imagemodel"),
		},
		Session: &SessionConfig{
			MaxHistory: c.Int("sessionhistory"),
			TTL:        c.Duration("sessionduration"),
		},
		API: &APIConfig{
			Timeout:      c.Duration("apitimeout"),
			OpenAIKey:    c.String("openaikey"),
			OpenAIURL:    c.String("openaiurl"),
			AnthropicKey: c.String("anthropickey"),
			GeminiKey:    c.String("geminikey"),
			OllamaURL:    c.String("ollamaurl"),
			OllamaKey:    c.String("ollamakey"),
		},
	}
}
