package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type AnalysisConfig struct {
	Endpoint       string        `yaml:"endpoint" validate:"required|fullUrl"`
	APIKey         string        `yaml:"apiKey"`
	Model          string        `yaml:"model" validate:"required"`
	Temperature    float64       `yaml:"temperature"`
	SystemPrompt   string        `yaml:"systemPrompt"`
	PromptTemplate string        `yaml:"promptTemplate"`
	Timeout        time.Duration `yaml:"timeout"`
}

type DiaryConfig struct {
	// StrictUpdate makes updates of an unknown record id fail with
	// ErrRecordNotFound instead of completing as a no-op.
	StrictUpdate bool `yaml:"strictUpdate"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Analysis    AnalysisConfig `yaml:"analysis"`
	Diary       DiaryConfig    `yaml:"diary"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
