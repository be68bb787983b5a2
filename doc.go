// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the openpockets API server.

openpockets answers "who funds this politician?" from the FEC bulk data
files: committee contributions to candidates are grouped by committee,
classified (traditional, super, leadership, corporate PAC) and mapped onto
industries, and the inverse view lists who receives money from an industry.

# Starting the Server

	DATABASE_URL=./fec.db INGEST_MANIFEST=./fec.yaml go run .

Or with flags:

	go run . -p 3001 -d ./fec.db -manifest ./fec.yaml

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string

Optional settings:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p): Server port (default: 3001)
  - INGEST_MANIFEST (-manifest): YAML list of FEC files loaded at startup
  - INDUSTRY_RULES (-industry-rules): YAML file replacing the built-in rules
  - RESOLVE_CACHE_SIZE, RESOLVE_CACHE_TTL, MATCH_REGION: name resolution
  - ALLOWED_ORIGIN (-origin): CORS origin of the frontend
  - GEMINI_API_KEY, GEMINI_MODEL: enable /api/chat
  - CONGRESS_API_KEY, VOTES_API_URL: enable recent votes
  - UPSTREAM_TIMEOUT: deadline for chat and vote requests

# Architecture

  - ingest: FEC flat-file layouts, parsing and transactional bulk loading
  - finance: identity resolution, aggregation, classification and reports
  - assistant: chat completions grounded in a candidate's money report
  - congress: recent roll-call votes from congress.gov
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request IDs, JSON helpers
  - metrics: Prometheus collectors served on /metrics
  - models: Request/response types
  - db: Connections, dialects and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
