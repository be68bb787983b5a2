// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/openpockets/assistant"
	"github.com/danielhkuo/openpockets/cliparse"
	"github.com/danielhkuo/openpockets/congress"
	"github.com/danielhkuo/openpockets/finance"
	"github.com/danielhkuo/openpockets/handlers"
	"github.com/danielhkuo/openpockets/metrics"
	"github.com/danielhkuo/openpockets/middleware"
)

// Services are the collaborators behind the routes. Assistant and Votes
// are nil when not configured; their routes then answer 503.
type Services struct {
	Finance   *finance.Service
	Assistant *assistant.Assistant
	Votes     congress.Provider
}

func NewRouter(svc Services, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	financeHandler := handlers.NewFinanceHandler(svc.Finance)
	industryHandler := handlers.NewIndustryHandler(svc.Finance)
	chatHandler := handlers.NewChatHandler(svc.Assistant, cfg)
	votesHandler := handlers.NewVotesHandler(svc.Votes, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Reports by politician identity (?firstName=&state=&chamber=)
	mux.HandleFunc("GET /api/politician/{name}/committees", middleware.WithLogging(financeHandler.GetPoliticianCommittees))
	mux.HandleFunc("GET /api/politician/{name}/industries", middleware.WithLogging(financeHandler.GetPoliticianIndustries))
	mux.HandleFunc("GET /api/politician/{name}/money-report", middleware.WithLogging(financeHandler.GetPoliticianMoneyReport))

	// Reports by FEC candidate ID
	mux.HandleFunc("GET /api/candidate/{candidateId}/committees", middleware.WithLogging(financeHandler.GetCandidateCommittees))
	mux.HandleFunc("GET /api/candidate/{candidateId}/industries", middleware.WithLogging(financeHandler.GetCandidateIndustries))
	mux.HandleFunc("GET /api/candidate/{candidateId}/money-report", middleware.WithLogging(financeHandler.GetCandidateMoneyReport))
	mux.HandleFunc("GET /api/candidate-info/{candidateId}", middleware.WithLogging(financeHandler.GetCandidateInfo))

	// Inverse industry view
	mux.HandleFunc("GET /api/industry-contributions/{industry}", middleware.WithLogging(industryHandler.GetRecipients))
	mux.HandleFunc("GET /api/industry-contributions/{industry}/groups", middleware.WithLogging(industryHandler.GetRecipientGroups))

	// External collaborators
	mux.HandleFunc("POST /api/chat", middleware.WithLogging(chatHandler.Chat))
	mux.HandleFunc("GET /api/chat", middleware.WithLogging(chatHandler.ChatUsage))
	mux.HandleFunc("GET /api/politician/{bioguideId}/recent-votes", middleware.WithLogging(votesHandler.GetRecentVotes))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("openpockets API v1"))
	})

	return mux
}
