// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3001)
  - DatabaseURL: SQLite path/DSN or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres, also sqlite3 and postgresql (default: sqlite)
  - IngestManifest: YAML manifest of FEC bulk files to load at startup
  - IndustryRules: YAML file replacing the built-in industry rules
  - ResolveCacheSize, ResolveCacheTTL: name resolution cache bounds
  - MatchRegion: prefer partial name matches in the politician's state/chamber
  - AllowedOrigin: CORS origin for the frontend
  - GeminiAPIKey, GeminiModel: chat assistant (optional)
  - VotesAPIURL, CongressAPIKey: recent votes (optional)
  - UpstreamTimeout: deadline for external API calls

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	INGEST_MANIFEST    → -manifest
	INDUSTRY_RULES     → -industry-rules
	RESOLVE_CACHE_SIZE → -cache-size
	RESOLVE_CACHE_TTL  → -cache-ttl
	MATCH_REGION       → -match-region
	ALLOWED_ORIGIN     → -origin
	GEMINI_API_KEY     → -gemini-key
	GEMINI_MODEL       → -gemini-model
	VOTES_API_URL      → -votes-url
	CONGRESS_API_KEY   → -congress-key
	UPSTREAM_TIMEOUT   → -upstream-timeout

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL is missing, the database type is
unknown, or a numeric, duration or boolean value does not parse.
*/
package cliparse
