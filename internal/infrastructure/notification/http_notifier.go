package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tommyfx/storefront/internal/domain/notification"
	"github.com/tommyfx/storefront/internal/infrastructure/config"
)

// maxResponseSize caps how much of the webhook response is read (64KB)
const maxResponseSize = 64 * 1024

// HTTPNotifier delivers order confirmations to an external webhook endpoint.
// Any non-2xx response is treated as a delivery failure; callers decide
// whether that failure matters.
type HTTPNotifier struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPNotifier creates a notifier from the notification configuration.
func NewHTTPNotifier(cfg *config.NotificationConfig, log *zap.Logger) (*HTTPNotifier, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("notification: endpoint is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPNotifier{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.Named("notifier"),
	}, nil
}

// SendOrderConfirmation posts the confirmation payload to the webhook.
func (n *HTTPNotifier) SendOrderConfirmation(ctx context.Context, confirmation notification.Confirmation) error {
	body, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("notification: failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notification: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification: request failed: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("order confirmation rejected by endpoint",
			zap.String("order_id", confirmation.Order.ID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody),
		)
		return fmt.Errorf("notification: endpoint returned HTTP %d", resp.StatusCode)
	}

	n.logger.Info("order confirmation delivered",
		zap.String("order_id", confirmation.Order.ID),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

// NoopNotifier discards confirmations. Used when notifications are disabled.
type NoopNotifier struct{}

// NewNoopNotifier creates a notifier that does nothing.
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

// SendOrderConfirmation is a no-op.
func (n *NoopNotifier) SendOrderConfirmation(_ context.Context, _ notification.Confirmation) error {
	return nil
}

var (
	_ notification.Notifier = (*HTTPNotifier)(nil)
	_ notification.Notifier = (*NoopNotifier)(nil)
)
