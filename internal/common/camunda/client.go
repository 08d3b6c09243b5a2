// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"talent-match-workers/internal/common/config"
)

// DefaultConnectTimeout bounds the topology check made by NewClient.
const DefaultConnectTimeout = 10 * time.Second

// Client wraps the Zeebe gRPC client with a broker reachability check.
type Client struct {
	zbc.Client
	requestTimeout time.Duration
}

// NewClient creates a Zeebe client and verifies the gateway answers a
// topology request before returning it.
func NewClient(cfg config.CamundaConfig) (*Client, error) {
	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: cfg.UsePlaintext,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{Client: zeebeClient, requestTimeout: config.GetDuration(cfg.RequestTimeout)}
	if c.requestTimeout <= 0 {
		c.requestTimeout = DefaultConnectTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), min(c.requestTimeout, DefaultConnectTimeout))
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		_ = zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.BrokerAddress, err)
	}
	return c, nil
}

// Ping sends a topology request. It satisfies database.Pinger so the broker
// shows up in readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	if _, err := c.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}
