// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). Each request gets an ID, taken from an incoming
X-Request-ID header or generated, echoed in the response and available to
handlers through RequestID(r.Context()). Request counts and latencies are
recorded per route pattern in the metrics package.

# CORS Middleware

Allow the configured frontend origin:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigin)(mux),
	}

Preflight requests from the allowed origin get 204; from any other origin 403.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.ChatRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Request bodies are capped at 1 MiB.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
