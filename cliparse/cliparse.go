package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/danielhkuo/openpockets/db"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Ingestion and classification inputs
	IngestManifest string
	IndustryRules  string

	// Identity resolution
	ResolveCacheSize int
	ResolveCacheTTL  time.Duration
	MatchRegion      bool

	AllowedOrigin string

	// External collaborators (optional; features degrade when unset)
	GeminiAPIKey    string
	GeminiModel     string
	VotesAPIURL     string
	CongressAPIKey  string
	UpstreamTimeout time.Duration
}

const (
	DefaultPort            = 3001
	DefaultCacheSize       = 1024
	DefaultCacheTTL        = time.Hour
	DefaultAllowedOrigin   = "http://localhost:5173"
	DefaultGeminiModel     = "gemini-2.0-flash"
	DefaultVotesAPIURL     = "https://api.congress.gov/v3"
	DefaultUpstreamTimeout = 20 * time.Second
)

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("openpockets", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	fs.StringVar(&cfg.IngestManifest, "manifest", "", "YAML manifest of FEC bulk files to load at startup")
	fs.StringVar(&cfg.IndustryRules, "industry-rules", "", "YAML file replacing the built-in industry rules")

	cacheSize := fs.Int("cache-size", -1, "Name resolution cache size (0 disables)")
	fs.DurationVar(&cfg.ResolveCacheTTL, "cache-ttl", 0, "Name resolution cache entry lifetime")
	matchRegion := fs.String("match-region", "", "Prefer partial name matches in the politician's state/chamber (true/false)")

	fs.StringVar(&cfg.AllowedOrigin, "origin", "", "CORS allowed origin")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.GeminiAPIKey, "gemini-key", "", "Gemini API key (prefer env)")
	fs.StringVar(&cfg.GeminiModel, "gemini-model", "", "Gemini model name")
	fs.StringVar(&cfg.VotesAPIURL, "votes-url", "", "Vote data API base URL")
	fs.StringVar(&cfg.CongressAPIKey, "congress-key", "", "Congress.gov API key (prefer env)")
	fs.DurationVar(&cfg.UpstreamTimeout, "upstream-timeout", 0, "Timeout for external API calls")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return Config{}, err
	}
	cfg.DatabaseType = string(dialect)

	if cfg.IngestManifest == "" {
		cfg.IngestManifest = os.Getenv("INGEST_MANIFEST")
	}
	if cfg.IndustryRules == "" {
		cfg.IndustryRules = os.Getenv("INDUSTRY_RULES")
	}

	cfg.ResolveCacheSize = *cacheSize
	if cfg.ResolveCacheSize < 0 {
		if s := os.Getenv("RESOLVE_CACHE_SIZE"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return Config{}, errors.New("invalid RESOLVE_CACHE_SIZE env variable")
			}
			cfg.ResolveCacheSize = n
		} else {
			cfg.ResolveCacheSize = DefaultCacheSize
		}
	}

	if cfg.ResolveCacheTTL, err = durationOrEnv(cfg.ResolveCacheTTL, "RESOLVE_CACHE_TTL", DefaultCacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.UpstreamTimeout, err = durationOrEnv(cfg.UpstreamTimeout, "UPSTREAM_TIMEOUT", DefaultUpstreamTimeout); err != nil {
		return Config{}, err
	}

	region := *matchRegion
	if region == "" {
		region = os.Getenv("MATCH_REGION")
	}
	if region != "" {
		b, err := strconv.ParseBool(region)
		if err != nil {
			return Config{}, errors.New("invalid MATCH_REGION value")
		}
		cfg.MatchRegion = b
	}

	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = os.Getenv("ALLOWED_ORIGIN")
		if cfg.AllowedOrigin == "" {
			cfg.AllowedOrigin = DefaultAllowedOrigin
		}
	}

	// Collaborator settings are optional; chat and votes report 503 without them
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
		if cfg.GeminiModel == "" {
			cfg.GeminiModel = DefaultGeminiModel
		}
	}
	if cfg.VotesAPIURL == "" {
		cfg.VotesAPIURL = os.Getenv("VOTES_API_URL")
		if cfg.VotesAPIURL == "" {
			cfg.VotesAPIURL = DefaultVotesAPIURL
		}
	}
	if cfg.CongressAPIKey == "" {
		cfg.CongressAPIKey = os.Getenv("CONGRESS_API_KEY")
	}

	return cfg, nil
}

func durationOrEnv(flagVal time.Duration, env string, def time.Duration) (time.Duration, error) {
	if flagVal > 0 {
		return flagVal, nil
	}
	s := os.Getenv(env)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", env)
	}
	return d, nil
}
