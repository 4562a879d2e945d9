// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Analyzer   AnalyzerConfig   `mapstructure:"analyzer"`
	Thresholds ThresholdConfig  `mapstructure:"thresholds"`
	Weights    map[string]int   `mapstructure:"weights"`
	Bands      []Band           `mapstructure:"bands"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Storage    StorageConfig    `mapstructure:"storage"`
	DB         DBConfig         `mapstructure:"db"`
	PubSub     PubSubConfig     `mapstructure:"pubsub"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// AnalyzerConfig governs worker fan-out, queueing, and input caps.
type AnalyzerConfig struct {
	Concurrency    int `mapstructure:"concurrency"`
	QueueDepth     int `mapstructure:"queue_depth"`
	RetentionHours int `mapstructure:"retention_hours"`
	MaxTextLength  int `mapstructure:"max_text_length"`
	MaxHeadings    int `mapstructure:"max_headings"`
	MaxImages      int `mapstructure:"max_images"`
	MaxLinks       int `mapstructure:"max_links"`
}

// ThresholdConfig holds every numeric cutoff the scorers consume. Nothing in
// the scoring code hard-codes a boundary; tests assert against these values.
type ThresholdConfig struct {
	MinTitleLength     int      `mapstructure:"min_title_length"`
	MaxTitleLength     int      `mapstructure:"max_title_length"`
	MinMetaDescLength  int      `mapstructure:"min_meta_desc_length"`
	MaxMetaDescLength  int      `mapstructure:"max_meta_desc_length"`
	LengthDecayPerChar int      `mapstructure:"length_decay_per_char"`
	KeywordBonus       int      `mapstructure:"keyword_bonus"`
	MinWordCount       int      `mapstructure:"min_word_count"`
	MaxAltFindings     int      `mapstructure:"max_alt_findings"`
	RequiredSocialKeys []string `mapstructure:"required_social_keys"`
	GenericAnchors     []string `mapstructure:"generic_anchors"`
}

// Band maps a contiguous score range to a qualitative label. Min and Max are
// inclusive.
type Band struct {
	Label string `mapstructure:"label"`
	Min   int    `mapstructure:"min"`
	Max   int    `mapstructure:"max"`
}

// EnrichmentConfig controls the best-effort insight generator integration.
type EnrichmentConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	TopN           int    `mapstructure:"top_n"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
}

// FetchConfig configures the page extractor's HTTP behavior.
type FetchConfig struct {
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// StorageConfig selects where finalized report artifacts are exported.
type StorageConfig struct {
	Provider  string `mapstructure:"provider"`
	BaseDir   string `mapstructure:"base_dir"`
	GCSBucket string `mapstructure:"gcs_bucket"`
	Prefix    string `mapstructure:"prefix"`
}

// DBConfig selects the job store backend.
type DBConfig struct {
	Provider string `mapstructure:"provider"`
	DSN      string `mapstructure:"dsn"`
}

// PubSubConfig holds metadata for publish-subscribe notifications.
type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SEO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 60)
	v.SetDefault("logging.development", true)

	v.SetDefault("analyzer.concurrency", 4)
	v.SetDefault("analyzer.queue_depth", 64)
	v.SetDefault("analyzer.retention_hours", 24)
	v.SetDefault("analyzer.max_text_length", 5000)
	v.SetDefault("analyzer.max_headings", 50)
	v.SetDefault("analyzer.max_images", 100)
	v.SetDefault("analyzer.max_links", 200)

	v.SetDefault("thresholds.min_title_length", 30)
	v.SetDefault("thresholds.max_title_length", 60)
	v.SetDefault("thresholds.min_meta_desc_length", 120)
	v.SetDefault("thresholds.max_meta_desc_length", 160)
	v.SetDefault("thresholds.length_decay_per_char", 3)
	v.SetDefault("thresholds.keyword_bonus", 10)
	v.SetDefault("thresholds.min_word_count", 300)
	v.SetDefault("thresholds.max_alt_findings", 5)
	v.SetDefault("thresholds.required_social_keys", []string{
		"og:title", "og:description", "og:image", "twitter:card",
	})
	v.SetDefault("thresholds.generic_anchors", []string{
		"click here", "here", "read more", "more", "link",
	})

	v.SetDefault("weights", map[string]int{
		string(seo.CategoryTitle):          20,
		string(seo.CategoryMeta):           20,
		string(seo.CategoryHeadings):       15,
		string(seo.CategoryImages):         15,
		string(seo.CategoryLinks):          15,
		string(seo.CategorySocial):         15,
		string(seo.CategoryContent):        10,
		string(seo.CategoryStructuredData): 10,
		string(seo.CategoryMobile):         10,
		string(seo.CategoryAccessibility):  10,
	})

	v.SetDefault("bands", []map[string]any{
		{"label": "critical", "min": 0, "max": 19},
		{"label": "poor", "min": 20, "max": 39},
		{"label": "needs-work", "min": 40, "max": 59},
		{"label": "fair", "min": 60, "max": 74},
		{"label": "good", "min": 75, "max": 89},
		{"label": "excellent", "min": 90, "max": 100},
	})

	v.SetDefault("enrichment.enabled", false)
	v.SetDefault("enrichment.top_n", 3)
	v.SetDefault("enrichment.timeout_seconds", 10)
	v.SetDefault("enrichment.model", "gemini-2.0-flash")

	v.SetDefault("fetch.user_agent", "seo-analyze-bot/1.0")
	v.SetDefault("fetch.timeout_seconds", 30)

	v.SetDefault("storage.provider", "memory")
	v.SetDefault("storage.prefix", "reports")
	v.SetDefault("db.provider", "memory")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Analyzer.Concurrency <= 0 {
		return fmt.Errorf("analyzer.concurrency must be > 0")
	}
	if c.Thresholds.MinTitleLength > c.Thresholds.MaxTitleLength {
		return fmt.Errorf("thresholds.min_title_length must be <= max_title_length")
	}
	if c.Thresholds.MinMetaDescLength > c.Thresholds.MaxMetaDescLength {
		return fmt.Errorf("thresholds.min_meta_desc_length must be <= max_meta_desc_length")
	}
	if c.Thresholds.LengthDecayPerChar <= 0 {
		return fmt.Errorf("thresholds.length_decay_per_char must be > 0")
	}
	if c.Enrichment.Enabled && c.Enrichment.APIKey == "" {
		return fmt.Errorf("enrichment.api_key must be set when enrichment is enabled")
	}
	if c.Enrichment.TimeoutSeconds <= 0 {
		return fmt.Errorf("enrichment.timeout_seconds must be > 0")
	}
	positive := false
	for name, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("weights.%s must be >= 0", name)
		}
		if w > 0 {
			positive = true
		}
	}
	if !positive {
		return fmt.Errorf("at least one category weight must be > 0")
	}
	if err := validateBands(c.Bands); err != nil {
		return err
	}
	if c.DB.Provider == "postgres" && c.DB.DSN == "" {
		return fmt.Errorf("db.dsn must be set when db.provider is postgres")
	}
	if c.Storage.Provider == "gcs" && c.Storage.GCSBucket == "" {
		return fmt.Errorf("storage.gcs_bucket must be set when storage.provider is gcs")
	}
	if c.Storage.Provider == "local" && c.Storage.BaseDir == "" {
		return fmt.Errorf("storage.base_dir must be set when storage.provider is local")
	}
	return nil
}

// validateBands requires an exhaustive, non-overlapping partition of [0,100]:
// every integer score maps to exactly one label.
func validateBands(bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("bands must not be empty")
	}
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })
	next := 0
	for _, b := range sorted {
		if b.Label == "" {
			return fmt.Errorf("band label must not be empty")
		}
		if b.Min != next {
			return fmt.Errorf("bands must cover [0,100] without gaps or overlaps: expected min %d, got %d", next, b.Min)
		}
		if b.Max < b.Min {
			return fmt.Errorf("band %q has max < min", b.Label)
		}
		next = b.Max + 1
	}
	if next != 101 {
		return fmt.Errorf("bands must end at 100, got %d", next-1)
	}
	return nil
}

// BandFor maps a score to its qualitative label. Scores outside [0,100] are
// clamped before lookup.
func (c Config) BandFor(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	for _, b := range c.Bands {
		if score >= b.Min && score <= b.Max {
			return b.Label
		}
	}
	return ""
}

// Weight returns the configured weight for a category (0 when absent).
func (c Config) Weight(cat seo.Category) int {
	return c.Weights[string(cat)]
}

// RequestTimeout converts the server timeout config into a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// EnrichmentTimeout bounds a single insight generator call.
func (c Config) EnrichmentTimeout() time.Duration {
	return time.Duration(c.Enrichment.TimeoutSeconds) * time.Second
}

// Retention converts the retention config into a duration.
func (c Config) Retention() time.Duration {
	return time.Duration(c.Analyzer.RetentionHours) * time.Hour
}

// FetchTimeout bounds a single page fetch.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}
