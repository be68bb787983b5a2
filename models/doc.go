// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - PoliticianIdentity: name, state, chamber (display-side lookup key)
  - ChatRequest: message plus optional candidate context

# Report Types

Computed per request, never persisted:

  - CommitteesReport: totals over all committees, top 20 detail rows, pacsByType
  - IndustriesReport: top 10 industry groups, all corporate connections
  - MoneyReport: both reports plus candidate info, contribution totals,
    linked committees and summary statistics
  - IndustryRecipientsResponse / RecipientGroupsResponse: the inverse
    industry view (who received money from a sector). The recipients
    endpoint serves only the Recipients array.

Currency values are plain numbers; formatting belongs to the client.

# Constants

Committee categories:

	CategoryTraditional = "traditional_pac"
	CategorySuper       = "super_pac"
	CategoryLeadership  = "leadership_pac"
	CategoryCorporate   = "corporate_pac"
	CategoryOther       = "other"

Candidate lookup sources:

	SourceSummary = "summary"
	SourceMaster  = "master"
	SourceNone    = "none"
*/
package models
