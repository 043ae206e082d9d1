package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port           string   `toml:"port"`
	Mode           string   `toml:"mode"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Caller bool   `toml:"caller"`
}

type LLMConfig struct {
	Provider        string   `toml:"provider"`
	Model           string   `toml:"model"`
	APIKey          string   `toml:"api_key"`
	BaseURL         string   `toml:"base_url"`
	PreferredModels []string `toml:"preferred_models"`
	Timeout         Duration `toml:"timeout"`
}

type SearchConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

type GeocoderConfig struct {
	BaseURL      string `toml:"base_url"`
	UserAgent    string `toml:"user_agent"`
	CountryCodes string `toml:"country_codes"`
	Limit        int    `toml:"limit"`
}

type MusicConfig struct {
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent"`
}

type WeatherConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

type HTTPConfig struct {
	Timeout Duration `toml:"timeout"`
}

type QuizConfig struct {
	GroundedCount int `toml:"grounded_count"`
	GenericCount  int `toml:"generic_count"`
}

// Prompts holds the prompt templates sent to the completion provider.
// Each template is a fmt format string; the verbs each one expects are
// listed next to the default in Default.
type Prompts struct {
	NarrativeSystem  string `toml:"narrative_system"`
	Narrative        string `toml:"narrative"`
	ContextualSystem string `toml:"contextual_system"`
	Contextual       string `toml:"contextual"`
	QuizSystem       string `toml:"quiz_system"`
	Quiz             string `toml:"quiz"`
	Character        string `toml:"character"`
}

// Duration is a time.Duration written as a string ("10s") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	LLM      LLMConfig      `toml:"llm"`
	Search   SearchConfig   `toml:"search"`
	Geocoder GeocoderConfig `toml:"geocoder"`
	Music    MusicConfig    `toml:"music"`
	Weather  WeatherConfig  `toml:"weather"`
	HTTP     HTTPConfig     `toml:"http"`
	Quiz     QuizConfig     `toml:"quiz"`
	Prompts  Prompts        `toml:"prompts"`
}

const userAgent = "StoryMap.ai/1.0 (contact@storymap.ai)"

// Default returns a configuration that talks to the public Groq, Tavily,
// Nominatim, MusicBrainz and OpenWeatherMap endpoints.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "5000",
			Mode:           "release",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Log: LogConfig{Level: "info", Format: "json"},
		LLM: LLMConfig{
			Provider: "groq",
			PreferredModels: []string{
				"llama-3.3-70b-versatile",
				"llama-3.1-8b-instant",
				"mixtral-8x7b-32768",
				"gemma2-9b-it",
			},
			Timeout: Duration{30 * time.Second},
		},
		Search: SearchConfig{BaseURL: "https://api.tavily.com"},
		Geocoder: GeocoderConfig{
			BaseURL:      "https://nominatim.openstreetmap.org",
			UserAgent:    userAgent,
			CountryCodes: "au",
			Limit:        5,
		},
		Music: MusicConfig{
			BaseURL:   "https://musicbrainz.org/ws/2",
			UserAgent: userAgent,
		},
		Weather: WeatherConfig{BaseURL: "https://api.openweathermap.org/data/2.5"},
		HTTP:    HTTPConfig{Timeout: Duration{10 * time.Second}},
		Quiz:    QuizConfig{GroundedCount: 8, GenericCount: 5},
		Prompts: defaultPrompts(),
	}
}

func defaultPrompts() Prompts {
	return Prompts{
		NarrativeSystem: "You are a creative storyteller who writes engaging, culturally sensitive stories about Australian locations.",
		// %[1]s location, %[2]s theme
		Narrative: `Write a short, engaging story (200-300 words) set in %[1]s, Australia, with the theme "%[2]s".
Include vivid descriptions of the landscape, local culture and the unique character of the place.
Start with a short title on its own line.`,
		ContextualSystem: "You are a factual storyteller. You only use the information you are given and never invent facts.",
		// %[1]s location, %[2]s theme, %[3]s facts
		Contextual: `Using ONLY the facts below, write a short factual narrative (120-200 words) about %[1]s with a %[2]s focus.
Do not add events, dates, names or numbers that are not in the facts.
Put a short title on the first line, then the narrative.

Facts:
%[3]s`,
		QuizSystem: "You are an educator creating respectful quizzes about Aboriginal and Torres Strait Islander knowledge. You respond with JSON only.",
		// %[1]d count, %[2]s location, %[3]s difficulty, %[4]s facts
		Quiz: `Create exactly %[1]d multiple-choice questions about Indigenous culture and knowledge connected to %[2]s, Australia, at %[3]s difficulty.
Base every question on the information below and nothing else.

Information:
%[4]s

Respond with ONLY a JSON array, no prose, in this exact shape:
[{"question": "...", "options": ["A", "B", "C", "D"], "correctAnswer": 0, "explanation": "..."}]
Each question must have exactly 4 options and correctAnswer must be the index (0-3) of the correct option.`,
		// %[1]s character type, %[2]s location
		Character: `Create a short character profile (150-200 words) of a %[1]s living in %[2]s, Australia.
Include their name, background, daily life and how the local landscape and culture shape who they are.`,
	}
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables. getenv is
// usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Server.Port, "PORT")
	set(&c.Server.Mode, "GIN_MODE")
	set(&c.Log.Level, "LOG_LEVEL")
	set(&c.Log.Format, "LOG_FORMAT")
	set(&c.LLM.Provider, "LLM_PROVIDER")
	set(&c.LLM.Model, "LLM_MODEL")
	set(&c.LLM.APIKey, "LLM_API_KEY", "GROQ_API_KEY")
	set(&c.LLM.BaseURL, "LLM_BASE_URL")
	set(&c.Search.APIKey, "TAVILY_API_KEY")
	set(&c.Weather.APIKey, "OPENWEATHER_API_KEY")

	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		c.HTTP.Timeout = Duration{d}
	}
	return nil
}

// LoadFromEnv resolves the config path from CONFIG_PATH, loads it and
// applies environment overrides.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.toml"
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}
