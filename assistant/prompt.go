// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assistant

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/openpockets/models"
)

const plainTextInstruction = "Respond in plain text only. Do not use markdown formatting like asterisks (*), bold (**), or bullet points."

// Context lines list at most this many committees and industries.
const contextItems = 5

// BuildPrompt prefixes the user's message with the plain-text instruction
// and, when report is non-nil and has data, a short finance summary.
func BuildPrompt(message string, report *models.MoneyReport) string {
	var b strings.Builder
	b.WriteString(plainTextInstruction)
	b.WriteString("\n\n")

	if ctx := financeContext(report); ctx != "" {
		b.WriteString(ctx)
		b.WriteString("\n")
	}

	b.WriteString(strings.TrimSpace(message))
	return b.String()
}

func financeContext(report *models.MoneyReport) string {
	if report == nil || report.CandidateID == "" {
		return ""
	}

	var b strings.Builder
	subject := report.CandidateID
	if report.Candidate != nil {
		subject = fmt.Sprintf("%s (%s, %s, %s)", report.Candidate.Name, report.Candidate.Party, report.Candidate.State, report.CandidateID)
	}
	fmt.Fprintf(&b, "Campaign finance context for %s:\n", subject)

	c := report.Committees
	fmt.Fprintf(&b, "Committee contributions: %s from %s committees\n",
		Money(c.TotalContributions), humanize.Comma(int64(c.TotalCommittees)))
	if report.Totals.IndividualContributionCount > 0 {
		fmt.Fprintf(&b, "Individual contributions: %s across %s transactions\n",
			Money(report.Totals.IndividualContributions), humanize.Comma(int64(report.Totals.IndividualContributionCount)))
	}

	if items := committeeItems(c.Committees); items != "" {
		fmt.Fprintf(&b, "Top committees: %s\n", items)
	}
	if items := industryItems(report.Industries.Industries); items != "" {
		fmt.Fprintf(&b, "Top industries: %s\n", items)
	}
	return b.String()
}

func committeeItems(committees []models.Committee) string {
	var parts []string
	for i, c := range committees {
		if i == contextItems {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Name, Money(c.TotalContributions)))
	}
	return strings.Join(parts, "; ")
}

func industryItems(groups []models.IndustryGroup) string {
	var parts []string
	for i, g := range groups {
		if i == contextItems {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", g.Industry, Money(g.TotalContributions)))
	}
	return strings.Join(parts, "; ")
}

// Money formats a dollar amount rounded to cents, e.g. $1,234.5.
func Money(amount float64) string {
	return "$" + humanize.Commaf(math.Round(amount*100)/100)
}
