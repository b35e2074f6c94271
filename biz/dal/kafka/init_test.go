package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewPublisherWithoutBrokers(t *testing.T) {
	p := NewPublisher(nil, map[string]string{TopicTrades: "tradex_trades"})
	require.Nil(t, p)

	// nil Publisher 所有方法均为 no-op
	require.NoError(t, p.TestConnection(context.Background()))
	p.Publish(context.Background(), TopicTrades, "k", map[string]string{"a": "b"})
	p.Close()
}

func TestTestConnectionUnreachableBroker(t *testing.T) {
	p := NewPublisher([]string{"127.0.0.1:1"}, nil)
	require.NotNil(t, p)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.Error(t, p.TestConnection(ctx))
}
