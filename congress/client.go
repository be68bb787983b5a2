// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package congress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/danielhkuo/openpockets/metrics"
	"github.com/danielhkuo/openpockets/models"
)

var (
	// ErrUnavailable marks a failed call to the vote-data service.
	ErrUnavailable = errors.New("vote data unavailable")
	// ErrMemberNotFound is returned when the service does not know the member.
	ErrMemberNotFound = errors.New("member not found")
)

const (
	// MaxVotes caps the votes returned by RecentVotes.
	MaxVotes = 10

	defaultCongress    = 119
	defaultTimeout     = 20 * time.Second
	defaultRateLimit   = 5
	defaultBurst       = 5
	defaultMaxRetries  = 3
	defaultBaseBackoff = 500 * time.Millisecond
	fetchConcurrency   = 4
	voteListLimit      = 50
	memberListLimit    = 500
)

// Provider supplies a member's recent roll-call votes.
type Provider interface {
	RecentVotes(ctx context.Context, bioguideID string) ([]models.Vote, error)
}

// Config configures a Client. Zero values take defaults; a negative
// MaxRetries disables retries.
type Config struct {
	BaseURL     string
	APIKey      string
	Congress    int
	Timeout     time.Duration
	RateLimit   rate.Limit
	Burst       int
	MaxRetries  int
	BaseBackoff time.Duration
}

// Client reads House roll-call votes from the congress.gov v3 API.
type Client struct {
	baseURL     string
	apiKey      string
	congress    int
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxRetries  int
	baseBackoff time.Duration
}

var _ Provider = (*Client)(nil)

func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		congress:    cfg.Congress,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: cfg.BaseBackoff,
	}
	if c.congress <= 0 {
		c.congress = defaultCongress
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.httpClient = &http.Client{Timeout: timeout}

	limit, burst := cfg.RateLimit, cfg.Burst
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	c.limiter = rate.NewLimiter(limit, burst)

	if c.maxRetries < 0 {
		c.maxRetries = 0
	} else if c.maxRetries == 0 {
		c.maxRetries = defaultMaxRetries
	}
	if c.baseBackoff <= 0 {
		c.baseBackoff = defaultBaseBackoff
	}
	return c
}

type rollCall struct {
	Congress          int    `json:"congress"`
	SessionNumber     int    `json:"sessionNumber"`
	RollCallNumber    int    `json:"rollCallNumber"`
	StartDate         string `json:"startDate"`
	VoteQuestion      string `json:"voteQuestion"`
	VoteType          string `json:"voteType"`
	Result            string `json:"result"`
	LegislationType   string `json:"legislationType"`
	LegislationNumber string `json:"legislationNumber"`
	URL               string `json:"url"`
}

type voteListResponse struct {
	Votes []rollCall `json:"houseRollCallVotes"`
}

type memberVote struct {
	BioguideID string `json:"bioguideID"`
	VoteCast   string `json:"voteCast"`
}

type memberVotesResponse struct {
	RollCalls []struct {
		Members []memberVote `json:"members"`
	} `json:"houseRollCallMemberVotes"`
}

// RecentVotes returns up to MaxVotes of the member's votes in the current
// Congress, newest first. Later sessions are read first and reading stops
// once enough votes are found.
func (c *Client) RecentVotes(ctx context.Context, bioguideID string) ([]models.Vote, error) {
	bioguideID = strings.TrimSpace(bioguideID)
	if err := c.checkMember(ctx, bioguideID); err != nil {
		return nil, err
	}

	votes := []models.Vote{}
	for _, session := range []int{2, 1} {
		if len(votes) >= MaxVotes {
			break
		}
		found, err := c.sessionVotes(ctx, bioguideID, session)
		if err != nil {
			return nil, err
		}
		votes = append(votes, found...)
	}

	sortNewestFirst(votes)
	if len(votes) > MaxVotes {
		votes = votes[:MaxVotes]
	}
	return votes, nil
}

func (c *Client) checkMember(ctx context.Context, bioguideID string) error {
	var discard json.RawMessage
	status, err := c.getJSON(ctx, "/member/"+url.PathEscape(bioguideID), nil, &discard)
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, bioguideID)
	}
	return err
}

func (c *Client) sessionVotes(ctx context.Context, bioguideID string, session int) ([]models.Vote, error) {
	query := url.Values{}
	query.Set("congress", strconv.Itoa(c.congress))
	query.Set("session", strconv.Itoa(session))
	query.Set("limit", strconv.Itoa(voteListLimit))

	var list voteListResponse
	if _, err := c.getJSON(ctx, "/house-vote", query, &list); err != nil {
		return nil, err
	}

	// Each roll call writes its own slot; misses stay nil.
	found := make([]*models.Vote, len(list.Votes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, rc := range list.Votes {
		g.Go(func() error {
			cast, ok, err := c.memberVote(gctx, session, rc.RollCallNumber, bioguideID)
			if err != nil {
				slog.Warn("member vote lookup failed", "roll_call", rc.RollCallNumber, "session", session, "error", err)
				return nil
			}
			if ok {
				v := toVote(rc, session, cast)
				found[i] = &v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var votes []models.Vote
	for _, v := range found {
		if v != nil {
			votes = append(votes, *v)
		}
	}
	return votes, nil
}

func (c *Client) memberVote(ctx context.Context, session, rollCall int, bioguideID string) (string, bool, error) {
	path := fmt.Sprintf("/house-vote/%d/%d/%d/members", c.congress, session, rollCall)
	query := url.Values{}
	query.Set("limit", strconv.Itoa(memberListLimit))

	var resp memberVotesResponse
	if _, err := c.getJSON(ctx, path, query, &resp); err != nil {
		return "", false, err
	}
	for _, rc := range resp.RollCalls {
		for _, m := range rc.Members {
			if m.BioguideID == bioguideID {
				return m.VoteCast, true, nil
			}
		}
	}
	return "", false, nil
}

func toVote(rc rollCall, session int, cast string) models.Vote {
	v := models.Vote{
		Congress:       rc.Congress,
		Session:        rc.SessionNumber,
		RollCallNumber: rc.RollCallNumber,
		Date:           rc.StartDate,
		Question:       rc.VoteQuestion,
		Description:    rc.VoteType,
		Result:         rc.Result,
		VoteCast:       cast,
		URL:            rc.URL,
	}
	if v.Session == 0 {
		v.Session = session
	}
	if rc.LegislationType != "" && rc.LegislationNumber != "" {
		v.BillNumber = rc.LegislationType + " " + rc.LegislationNumber
	}
	return v
}

func sortNewestFirst(votes []models.Vote) {
	parsed := make(map[string]time.Time, len(votes))
	for _, v := range votes {
		if ts, err := time.Parse(time.RFC3339, v.Date); err == nil {
			parsed[v.Date] = ts
		}
	}
	sort.SliceStable(votes, func(a, b int) bool {
		ta, okA := parsed[votes[a].Date]
		tb, okB := parsed[votes[b].Date]
		if okA && okB {
			return ta.After(tb)
		}
		return votes[a].Date > votes[b].Date
	})
}

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// getJSON fetches path and decodes a 200 response into v, retrying
// transient failures with exponential backoff. It returns the last HTTP
// status seen (0 if no response arrived).
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) (int, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("format", "json")
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	endpoint := c.baseURL + path + "?" + query.Encode()

	var lastErr error
	var status int
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.baseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return status, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return status, fmt.Errorf("rate limiter error: %w", err)
		}

		var err error
		status, err = c.do(ctx, endpoint, v)
		if err == nil {
			return status, nil
		}
		lastErr = err
		var retryable *retryableError
		if !errors.As(err, &retryable) {
			break
		}
	}

	metrics.UpstreamErrors.WithLabelValues("congress").Inc()
	return status, fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

func (c *Client) do(ctx context.Context, endpoint string, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, &retryableError{err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &retryableError{err: fmt.Errorf("failed to read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return resp.StatusCode, &retryableError{err: errors.New("rate limited (429)")}
	case resp.StatusCode >= 500:
		return resp.StatusCode, &retryableError{err: fmt.Errorf("server error (%d)", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
	}
	return resp.StatusCode, nil
}
