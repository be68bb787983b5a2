// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the openpockets API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Services{Finance: svc, Assistant: chat, Votes: votes}, cfg)

# Endpoints

Operational:

	GET /health
	GET /metrics
	GET /

Reports by politician identity (query: firstName, state, chamber):

	GET /api/politician/{name}/committees
	GET /api/politician/{name}/industries
	GET /api/politician/{name}/money-report

Reports by FEC candidate ID:

	GET /api/candidate/{candidateId}/committees
	GET /api/candidate/{candidateId}/industries
	GET /api/candidate/{candidateId}/money-report
	GET /api/candidate-info/{candidateId}

Inverse industry view:

	GET /api/industry-contributions/{industry}         - top 20 recipients
	GET /api/industry-contributions/{industry}/groups  - top 5 contributor groups

External collaborators (503 when unconfigured):

	POST /api/chat
	GET  /api/politician/{bioguideId}/recent-votes

Report endpoints answer 200 with an empty report and a message when the
politician cannot be resolved.
*/
package router
