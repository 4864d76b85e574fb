package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/openride/ride-server/pkg/logger"
)

// Notifier fires a repository-dispatch style webhook after events such as
// a message send. It is strictly best-effort: callers log the returned
// error and move on, a notification failure never fails the request.
type Notifier struct {
	http       *resty.Client
	webhookURL string
	token      string
	logger     *logger.Logger
}

// New creates a notifier. With an empty webhook URL or token every Dispatch
// becomes a logged no-op.
func New(webhookURL, token string, timeout time.Duration, log *logger.Logger) *Notifier {
	return &Notifier{
		http:       resty.New().SetTimeout(timeout).SetRetryCount(0),
		webhookURL: webhookURL,
		token:      token,
		logger:     log,
	}
}

type dispatchPayload struct {
	EventType     string      `json:"event_type"`
	ClientPayload interface{} `json:"client_payload"`
}

// Dispatch posts an event to the configured webhook
func (n *Notifier) Dispatch(ctx context.Context, eventType string, payload interface{}) error {
	if n.webhookURL == "" || n.token == "" {
		n.logger.Debug("Notification webhook not configured, skipping",
			logger.String("event_type", eventType),
		)
		return nil
	}

	resp, err := n.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "token "+n.token).
		SetHeader("Accept", "application/vnd.github.v3+json").
		SetHeader("Content-Type", "application/json").
		SetBody(dispatchPayload{
			EventType:     eventType,
			ClientPayload: payload,
		}).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("notification dispatch failed: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("notification dispatch answered %d: %s", resp.StatusCode(), resp.String())
	}

	n.logger.Info("Notification dispatched",
		logger.String("event_type", eventType),
	)
	return nil
}
