// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package congress reads a member's recent House roll-call votes from the
congress.gov v3 API.

	client := congress.NewClient(congress.Config{BaseURL: cfg.VotesAPIURL, APIKey: cfg.CongressAPIKey})
	votes, err := client.RecentVotes(ctx, "S001234")

Requests share a token-bucket limiter (golang.org/x/time/rate). Network
errors, 429 and 5xx responses are retried with exponential backoff; any
other failure is returned wrapped in ErrUnavailable. An unknown member
yields ErrMemberNotFound.
*/
package congress
