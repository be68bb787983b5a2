// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the openpockets API.

# Handler Types

Each handler is a struct holding the service it exposes:

  - FinanceHandler: committee, industry and money reports; candidate info
  - IndustryHandler: recipients of an industry's money
  - ChatHandler: chat assistant (503 when no provider is configured)
  - VotesHandler: recent roll-call votes (503 when not configured)

	financeHandler := handlers.NewFinanceHandler(svc)

# Politician Identity

Report routes accept either an FEC candidate ID or a politician name.
Names come from the path, with optional firstName, state and chamber query
parameters:

	GET /api/politician/Warren/committees?firstName=Elizabeth&state=MA&chamber=senate

resolves "Warren, Elizabeth". A name that resolves to no candidate is not
an error: the response is the empty report with a message.

# Errors

Storage failures are logged with the request ID and answered with 500 and
a generic message. Upstream failures of the chat and vote collaborators
answer 502.
*/
package handlers
