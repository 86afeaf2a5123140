package hedera

import (
	"context"
	"errors"
	"testing"
	"time"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

func TestNewClient_MissingCredentials(t *testing.T) {
	tests := []struct {
		name, account, key string
	}{
		{"no account", "", "302e020100300506032b657004220420"},
		{"no key", "0.0.1234", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient("testnet", tt.account, tt.key, time.Second); err == nil {
				t.Error("NewClient should fail without credentials")
			}
		})
	}
}

func TestNewClient_InvalidInputs(t *testing.T) {
	if _, err := NewClient("nosuchnet", "0.0.1234", "abc", time.Second); err == nil {
		t.Error("NewClient should reject an unknown network")
	}
	if _, err := NewClient("testnet", "not-an-account", "abc", time.Second); err == nil {
		t.Error("NewClient should reject a malformed account id")
	}
	if _, err := NewClient("testnet", "0.0.1234", "not-a-key", time.Second); err == nil {
		t.Error("NewClient should reject a malformed key")
	}
}

func TestNewClient_RequestTimeout(t *testing.T) {
	key, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	c, err := NewClient("TestNet", "0.0.1234", key.String(), 3*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()
	got := c.client.GetRequestTimeout()
	if got == nil || *got != 3*time.Second {
		t.Errorf("GetRequestTimeout() = %v, want 3s", got)
	}
	if id := c.client.GetOperatorAccountID().String(); id != "0.0.1234" {
		t.Errorf("operator = %q, want 0.0.1234", id)
	}

	d, err := NewClient("testnet", "0.0.1234", key.String(), 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer d.Close()
	if got := d.client.GetRequestTimeout(); got != nil && *got == 0 {
		t.Error("zero timeout should keep the SDK default")
	}
}

func TestRun(t *testing.T) {
	id, err := run(context.Background(), func() (string, error) { return "0.0.9", nil })
	if err != nil || id != "0.0.9" {
		t.Errorf("run = %q, %v", id, err)
	}

	boom := errors.New("boom")
	if _, err := run(context.Background(), func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Errorf("run err = %v, want %v", err, boom)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	release := make(chan struct{})
	defer close(release)
	_, err = run(ctx, func() (string, error) {
		<-release
		return "late", nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("run err = %v, want deadline exceeded", err)
	}
}
