// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/openpockets/models"
)

// TopIndustries is the number of industry groups in an industry report.
const TopIndustries = 10

//go:embed industries.yaml
var defaultRulesYAML []byte

// Rule labels a company whose name contains any keyword.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

type fallback struct {
	EntitySuffixes []string `yaml:"entity_suffixes"`
	EntityLabel    string   `yaml:"entity_label"`
	DefaultLabel   string   `yaml:"default_label"`
}

// Rules is an ordered industry rule table. The zero value is not usable;
// build one with DefaultRules, LoadRules or ParseRules.
type Rules struct {
	Rules    []Rule   `yaml:"rules"`
	Fallback fallback `yaml:"fallback"`
}

// DefaultRules returns the built-in rule table.
func DefaultRules() *Rules {
	r, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in industry rules: %v", err))
	}
	return r
}

// LoadRules reads a rule table from a YAML file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read industry rules: %w", err)
	}
	r, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("invalid industry rules %s: %w", path, err)
	}
	return r, nil
}

// ParseRules decodes and validates a YAML rule table. Keywords are
// uppercased; rule order is kept.
func ParseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if r.Fallback.DefaultLabel == "" {
		return nil, errors.New("fallback.default_label is required")
	}
	if len(r.Fallback.EntitySuffixes) > 0 && r.Fallback.EntityLabel == "" {
		return nil, errors.New("fallback.entity_label is required with entity_suffixes")
	}
	for i := range r.Rules {
		rule := &r.Rules[i]
		if rule.Label == "" || len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("rule %d needs a label and keywords", i)
		}
		rule.Keywords = upperAll(rule.Keywords)
	}
	r.Fallback.EntitySuffixes = upperAll(r.Fallback.EntitySuffixes)
	return &r, nil
}

func upperAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Classify returns the industry label for a company name. It always
// returns a label.
func (r *Rules) Classify(name string) string {
	upper := strings.ToUpper(name)
	for _, rule := range r.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(upper, kw) {
				return rule.Label
			}
		}
	}
	for _, suffix := range r.Fallback.EntitySuffixes {
		if strings.Contains(upper, suffix) {
			return r.Fallback.EntityLabel
		}
	}
	return r.Fallback.DefaultLabel
}

// Keywords returns the keywords of the rule labelled industry (matched
// case-insensitively), or the uppercased label itself for unknown labels.
func (r *Rules) Keywords(industry string) []string {
	for _, rule := range r.Rules {
		if strings.EqualFold(rule.Label, strings.TrimSpace(industry)) {
			return append([]string(nil), rule.Keywords...)
		}
	}
	if kw := strings.ToUpper(strings.TrimSpace(industry)); kw != "" {
		return []string{kw}
	}
	return nil
}

// Labels lists rule labels in evaluation order.
func (r *Rules) Labels() []string {
	labels := make([]string, len(r.Rules))
	for i, rule := range r.Rules {
		labels[i] = rule.Label
	}
	return labels
}

// GroupByIndustry groups companies by their industry label and ranks the
// groups by total, ties keeping first-seen order.
func GroupByIndustry(companies []models.Company) []models.IndustryGroup {
	groups := []models.IndustryGroup{}
	index := make(map[string]int)
	for _, c := range companies {
		i, ok := index[c.Industry]
		if !ok {
			i = len(groups)
			index[c.Industry] = i
			groups = append(groups, models.IndustryGroup{Industry: c.Industry, Companies: []models.Company{}})
		}
		g := &groups[i]
		g.Companies = append(g.Companies, c)
		g.TotalContributions += c.TotalContributions
		g.ConnectionCount++
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].TotalContributions > groups[b].TotalContributions
	})
	return groups
}

// Company connection types
const (
	ConnectionSponsor = "connected_organization"
	ConnectionDirect  = "direct_contribution"
)

// CompaniesFromCommittees derives the corporate connections behind a
// candidate's committees: each committee's connected organization, or the
// contributor itself when it files as an organization. Companies seen
// under several committees are merged by name.
func CompaniesFromCommittees(aggs []CommitteeAggregate, rules *Rules) []models.Company {
	companies := []models.Company{}
	index := make(map[string]int)
	for _, ca := range aggs {
		var c models.Company
		switch {
		case ca.ConnectedOrg != "":
			c = models.Company{Name: ca.ConnectedOrg, Type: "Corporate Sponsor", ConnectionType: ConnectionSponsor}
		case isOrganization(ca.EntityType):
			c = models.Company{Name: ca.Name, Type: "Organization", ConnectionType: ConnectionDirect}
		default:
			continue
		}
		c.CommitteeID = ca.CommitteeID
		c.CommitteeName = ca.Name
		c.TotalContributions = ca.TotalAmount

		key := NormalizeName(c.Name)
		if i, ok := index[key]; ok {
			companies[i].TotalContributions += c.TotalContributions
			continue
		}
		c.Industry = rules.Classify(c.Name)
		index[key] = len(companies)
		companies = append(companies, c)
	}

	sort.SliceStable(companies, func(a, b int) bool {
		return companies[a].TotalContributions > companies[b].TotalContributions
	})
	return companies
}

func isOrganization(entityType string) bool {
	switch strings.ToUpper(strings.TrimSpace(entityType)) {
	case "ORG", "CORP":
		return true
	}
	return false
}
