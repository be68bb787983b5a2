package models

// Committee categories
const (
	CategoryTraditional = "traditional_pac"
	CategorySuper       = "super_pac"
	CategoryLeadership  = "leadership_pac"
	CategoryCorporate   = "corporate_pac"
	CategoryOther       = "other"
)

// Categories lists every committee category in report order.
var Categories = []string{
	CategoryTraditional,
	CategorySuper,
	CategoryLeadership,
	CategoryCorporate,
	CategoryOther,
}

// Candidate lookup sources
const (
	SourceSummary = "summary"
	SourceMaster  = "master"
	SourceNone    = "none"
)

// Request types

// PoliticianIdentity is the display-side key for a politician. Chamber is
// "senate" or "house" (or the FEC office codes S/H).
type PoliticianIdentity struct {
	Name    string `json:"name"`
	State   string `json:"state,omitempty"`
	Chamber string `json:"chamber,omitempty"`
}

type ChatRequest struct {
	Message     string              `json:"message"`
	CandidateID string              `json:"candidateId,omitempty"`
	Politician  *PoliticianIdentity `json:"politician,omitempty"`
}

// Response types

type Committee struct {
	CommitteeID           string  `json:"committee_id,omitempty"`
	Name                  string  `json:"name"`
	EntityType            string  `json:"entity_type"`
	PACType               string  `json:"pac_type"`
	Designation           string  `json:"designation"`
	PartyAffiliation      string  `json:"party_affiliation"`
	IsCorporatePAC        bool    `json:"is_corporate_pac"`
	ConnectedOrganization string  `json:"connected_organization,omitempty"`
	TotalContributions    float64 `json:"total_contributions"`
	TransactionCount      int     `json:"transaction_count"`
	Years                 []int   `json:"years"`
	PACCategory           string  `json:"pac_category"`
}

type CommitteesReport struct {
	CandidateID        string                 `json:"candidateId,omitempty"`
	TotalContributions float64                `json:"totalContributions"`
	TotalCommittees    int                    `json:"totalCommittees"`
	Committees         []Committee            `json:"committees"`
	PACsByType         map[string][]Committee `json:"pacsByType"`
	Message            string                 `json:"message,omitempty"`
}

type Company struct {
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	Industry           string  `json:"industry"`
	ConnectionType     string  `json:"connection_type"`
	CommitteeID        string  `json:"committee_id,omitempty"`
	CommitteeName      string  `json:"committee_name,omitempty"`
	TotalContributions float64 `json:"total_contributions"`
}

type IndustryGroup struct {
	Industry           string    `json:"industry"`
	Companies          []Company `json:"companies"`
	TotalContributions float64   `json:"totalContributions"`
	ConnectionCount    int       `json:"connectionCount"`
}

type IndustriesReport struct {
	CandidateID          string          `json:"candidateId,omitempty"`
	Industries           []IndustryGroup `json:"industries"`
	CorporateConnections []Company       `json:"corporateConnections"`
	Message              string          `json:"message,omitempty"`
}

type CandidateInfo struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	Party                   string  `json:"party"`
	State                   string  `json:"state"`
	District                string  `json:"district,omitempty"`
	Office                  string  `json:"office,omitempty"`
	TotalReceipts           float64 `json:"totalReceipts"`
	TotalDisbursements      float64 `json:"totalDisbursements"`
	CashOnHand              float64 `json:"cashOnHand"`
	DebtsOwed               float64 `json:"debtsOwed"`
	IndividualContributions float64 `json:"individualContributions"`
	CoverageEndDate         string  `json:"coverageEndDate,omitempty"`
	Source                  string  `json:"source"`
}

type ContributionTotals struct {
	CommitteeContributions      float64 `json:"committeeContributions"`
	CommitteeContributionCount  int     `json:"committeeContributionCount"`
	IndividualContributions     float64 `json:"individualContributions"`
	IndividualContributionCount int     `json:"individualContributionCount"`
	TotalContributions          float64 `json:"totalContributions"`
	YearsWithData               []int   `json:"yearsWithData"`
}

type LinkedCommittee struct {
	CommitteeID  string `json:"committee_id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Designation  string `json:"designation"`
	ElectionYear int    `json:"election_year"`
}

type SummaryStats struct {
	TotalPACsConnected        int     `json:"totalPACsConnected"`
	TotalPACContributions     float64 `json:"totalPACContributions"`
	TotalCorporateConnections int     `json:"totalCorporateConnections"`
	TotalIndustries           int     `json:"totalIndustries"`
	LinkedCommittees          int     `json:"linkedCommittees"`
}

type MoneyReport struct {
	CandidateID      string             `json:"candidateId,omitempty"`
	Candidate        *CandidateInfo     `json:"candidate,omitempty"`
	Committees       CommitteesReport   `json:"committees"`
	Industries       IndustriesReport   `json:"industries"`
	Totals           ContributionTotals `json:"contributionTotals"`
	LinkedCommittees []LinkedCommittee  `json:"linkedCommittees"`
	SummaryStats     SummaryStats       `json:"summaryStats"`
	Message          string             `json:"message,omitempty"`
}

type IndustryRecipient struct {
	Name            string  `json:"name"`
	Party           string  `json:"party"`
	State           string  `json:"state"`
	ContributorName string  `json:"contributor_name"`
	Amount          float64 `json:"amount"`
	CandidateID     string  `json:"candidate_id"`
	Source          string  `json:"source"`
}

type RecipientGroup struct {
	Contributor        string              `json:"contributor"`
	Recipients         []IndustryRecipient `json:"recipients"`
	TotalContributions float64             `json:"totalContributions"`
	RecipientCount     int                 `json:"recipientCount"`
}

type IndustryRecipientsResponse struct {
	Industry   string              `json:"industry"`
	Keywords   []string            `json:"keywords"`
	Recipients []IndustryRecipient `json:"recipients"`
	Message    string              `json:"message,omitempty"`
}

type RecipientGroupsResponse struct {
	Industry string           `json:"industry"`
	Groups   []RecipientGroup `json:"groups"`
	Message  string           `json:"message,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type Vote struct {
	Congress       int    `json:"congress"`
	Session        int    `json:"session"`
	RollCallNumber int    `json:"rollCallNumber"`
	Date           string `json:"date"`
	Question       string `json:"question"`
	Description    string `json:"description,omitempty"`
	Result         string `json:"result,omitempty"`
	VoteCast       string `json:"voteCast"`
	BillNumber     string `json:"billNumber,omitempty"`
	URL            string `json:"url,omitempty"`
}

type RecentVotesResponse struct {
	BioguideID string `json:"bioguideId"`
	Votes      []Vote `json:"votes"`
	Message    string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
