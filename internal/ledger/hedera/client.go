// Package hedera publishes audit entries to the Hedera network (consensus topics or files).
package hedera

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// Client is an operator-signed Hedera client. It implements audit.Ledger.
type Client struct {
	client *hedera.Client
	key    hedera.PrivateKey
}

// NewClient returns a client for network (testnet, previewnet, mainnet) signing with the operator
// account and key. requestTimeout bounds each SDK request; zero keeps the SDK default.
func NewClient(network, accountID, privateKey string, requestTimeout time.Duration) (*Client, error) {
	if accountID == "" || privateKey == "" {
		return nil, errors.New("hedera: operator account and key must be set")
	}
	c, err := hedera.ClientForName(strings.ToLower(network))
	if err != nil {
		return nil, fmt.Errorf("hedera: network %q: %w", network, err)
	}
	id, err := hedera.AccountIDFromString(strings.TrimSpace(accountID))
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("hedera: operator account: %w", err)
	}
	key, err := hedera.PrivateKeyFromString(strings.TrimSpace(privateKey))
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("hedera: operator key: %w", err)
	}
	c.SetOperator(id, key)
	if requestTimeout > 0 {
		c.SetRequestTimeout(&requestTimeout)
	}
	return &Client{client: c, key: key}, nil
}

// SubmitMessage appends message to topicID and waits for consensus. Returns the transaction id.
func (c *Client) SubmitMessage(ctx context.Context, topicID string, message []byte) (string, error) {
	topic, err := hedera.TopicIDFromString(strings.TrimSpace(topicID))
	if err != nil {
		return "", fmt.Errorf("hedera: topic id: %w", err)
	}
	return run(ctx, func() (string, error) {
		resp, err := hedera.NewTopicMessageSubmitTransaction().
			SetTopicID(topic).
			SetMessage(message).
			Execute(c.client)
		if err != nil {
			return "", err
		}
		if _, err := resp.GetReceipt(c.client); err != nil {
			return "", err
		}
		return resp.TransactionID.String(), nil
	})
}

// CreateFile creates a file holding contents, owned by the operator key. Returns the file id.
func (c *Client) CreateFile(ctx context.Context, contents []byte) (string, error) {
	return run(ctx, func() (string, error) {
		resp, err := hedera.NewFileCreateTransaction().
			SetKeys(c.key.PublicKey()).
			SetContents(contents).
			Execute(c.client)
		if err != nil {
			return "", err
		}
		receipt, err := resp.GetReceipt(c.client)
		if err != nil {
			return "", err
		}
		if receipt.FileID == nil {
			return "", errors.New("hedera: receipt has no file id")
		}
		return receipt.FileID.String(), nil
	})
}

// Close releases the SDK's network connections.
func (c *Client) Close() error {
	return c.client.Close()
}

type result struct {
	id  string
	err error
}

// run executes fn, returning early with ctx.Err() when ctx ends first. The SDK call itself is not
// cancellable, so an abandoned call finishes in the background bounded by the request timeout.
func run(ctx context.Context, fn func() (string, error)) (string, error) {
	done := make(chan result, 1)
	go func() {
		id, err := fn()
		done <- result{id: id, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.id, r.err
	}
}
