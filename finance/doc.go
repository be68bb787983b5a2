// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package finance turns loaded FEC data into per-politician finance reports.

# Pipeline

A request flows through four stages:

	identity → Resolver.Resolve → candidate ID
	candidate ID → AggregateContributions → ranked committee totals
	committee totals → ClassifyCommittee / Rules.Classify → categories, industries
	everything → CommitteeReport / IndustryReport / MoneyReport

# Identity Resolution

Names are uppercased and diacritic-folded. An exact name match wins;
otherwise the first candidate (by name, then ID) whose name contains the
surname. With MatchRegion the politician's state and chamber break ties
among those rows. Results are held in a bounded, expiring LRU.

# Aggregation

Individual (IND) contributions are always excluded. A pass groups by
committee ID when every row has one and by normalized contributor name
otherwise. Groups rank by total, ties in load order. The sum of group
totals always equals the sum of the candidate's non-individual rows.

# Classification

Committees: corporate sponsor first, then N/Q traditional, O super,
V/W leadership, anything else other.

Industries: an ordered keyword table (industries.yaml, replaceable at
startup) with an entity-suffix fallback and a default label.

# Reports

Report detail lists are truncated (20 committees, 10 industries, 20
recipients, 5 recipient groups); rolled-up totals never are. An
unresolvable politician produces an empty report with a message.
*/
package finance
