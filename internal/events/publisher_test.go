package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPublisher_KeepsOrder(t *testing.T) {
	p := NewMemoryPublisher()
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, ReviewCreated, ReviewCreatedPayload{ReviewID: "r1"}))
	require.NoError(t, p.Publish(ctx, CreatorRemoved, CreatorRemovedPayload{UserID: "u1"}))

	msgs := p.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, ReviewCreated, msgs[0].Key)
	assert.Equal(t, CreatorRemoved, msgs[1].Key)

	// копия не влияет на внутреннее состояние
	msgs[0].Key = "changed"
	assert.Equal(t, ReviewCreated, p.Messages()[0].Key)
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher()
	assert.NoError(t, p.Publish(context.Background(), CreatorStatusChanged, nil))
	assert.NoError(t, p.Close())
}
