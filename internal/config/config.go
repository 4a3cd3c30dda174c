package config

import "syncflow-curator/internal/feed"

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings. Snapshot caching is enabled
// only when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// FeedsConfig controls the ingestion side: which feeds to pull and how.
type FeedsConfig struct {
	Sources   []feed.Source `mapstructure:"sources"`
	Timeout   string        `mapstructure:"timeout"`    // duration string, e.g. "10s"
	Retries   int           `mapstructure:"retries"`    // attempts per feed
	RateDelay string        `mapstructure:"rate_delay"` // pause before each request
}

// CurationConfig holds the pipeline policy knobs.
type CurationConfig struct {
	MaxDeals            int     `mapstructure:"max_deals"`
	MaxPerCategory      int     `mapstructure:"max_per_category"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	AffiliateTag        string  `mapstructure:"affiliate_tag"`
	OutputPath          string  `mapstructure:"output_path"`
	Interval            string  `mapstructure:"interval"` // serve-mode re-run interval
}

// Config is the top-level configuration structure.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Feeds    FeedsConfig    `mapstructure:"feeds"`
	Curation CurationConfig `mapstructure:"curation"`
}

// defaultSources is the prioritized feed list; most reliable sources first.
var defaultSources = []feed.Source{
	{Name: "slickdeals", URL: "https://slickdeals.net/newsearch.php?searchin=first&rss=1"},
	{Name: "buildapcsales", URL: "https://www.reddit.com/r/buildapcsales/.rss"},
	{Name: "reddit-deals", URL: "https://www.reddit.com/r/deals/.rss"},
	{Name: "dealnews", URL: "https://www.dealnews.com/?rss=1"},
	{Name: "happydeal", URL: "https://happydealhappyday.com/category/amazon-deals/feed/"},
	{Name: "dealsplus", URL: "https://www.dealsplus.com/rss.xml"},
	{Name: "techbargains", URL: "https://www.techbargains.com/rss.xml"},
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if len(c.Feeds.Sources) == 0 {
		c.Feeds.Sources = defaultSources
	}
	if c.Feeds.Timeout == "" {
		c.Feeds.Timeout = "10s"
	}
	if c.Feeds.Retries == 0 {
		c.Feeds.Retries = 2
	}
	if c.Feeds.RateDelay == "" {
		c.Feeds.RateDelay = "500ms"
	}
	if c.Curation.MaxDeals == 0 {
		c.Curation.MaxDeals = 80
	}
	if c.Curation.MaxPerCategory == 0 {
		c.Curation.MaxPerCategory = 25
	}
	if c.Curation.SimilarityThreshold == 0 {
		c.Curation.SimilarityThreshold = 0.85
	}
	if c.Curation.AffiliateTag == "" {
		c.Curation.AffiliateTag = "syncflow-20"
	}
	if c.Curation.OutputPath == "" {
		c.Curation.OutputPath = "deals.json"
	}
	if c.Curation.Interval == "" {
		c.Curation.Interval = "30m"
	}
}
