// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danielhkuo/openpockets/finance"
	"github.com/danielhkuo/openpockets/metrics"
	"github.com/danielhkuo/openpockets/models"
)

// ErrEmptyMessage is returned for a blank chat message.
var ErrEmptyMessage = errors.New("message is required")

// Assistant answers chat messages, optionally grounded in a candidate's
// money report.
type Assistant struct {
	completer Completer
	finance   *finance.Service
}

func New(completer Completer, svc *finance.Service) *Assistant {
	return &Assistant{completer: completer, finance: svc}
}

// Reply returns the plain-text answer to req. Finance context is
// best-effort: a failed lookup is logged and the message is sent without it.
func (a *Assistant) Reply(ctx context.Context, req models.ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", ErrEmptyMessage
	}

	report := a.contextReport(ctx, req)
	answer, err := a.completer.Complete(ctx, BuildPrompt(req.Message, report))
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("gemini").Inc()
		return "", err
	}
	return PlainText(answer), nil
}

func (a *Assistant) contextReport(ctx context.Context, req models.ChatRequest) *models.MoneyReport {
	if a.finance == nil {
		return nil
	}

	var key finance.CandidateKey
	switch {
	case strings.TrimSpace(req.CandidateID) != "":
		key = finance.ByCandidateID(req.CandidateID)
	case req.Politician != nil && strings.TrimSpace(req.Politician.Name) != "":
		key = finance.ByIdentity(*req.Politician)
	default:
		return nil
	}

	report, err := a.finance.MoneyReport(ctx, key)
	if err != nil {
		slog.Warn("chat context lookup failed", "error", err)
		return nil
	}
	return &report
}
