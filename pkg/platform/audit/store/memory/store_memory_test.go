package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "passport/pkg/domain"
	audit "passport/pkg/platform/audit"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	first := id.NewPassportID()
	second := id.NewPassportID()

	require.NoError(t, store.Append(ctx, audit.Event{PassportID: first, Action: string(audit.EventPassportIssued)}))
	require.NoError(t, store.Append(ctx, audit.Event{PassportID: first, Action: string(audit.EventStampAdded)}))
	require.NoError(t, store.Append(ctx, audit.Event{PassportID: second, Action: string(audit.EventPassportIssued)}))

	events, err := store.ListByPassport(ctx, first)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, string(audit.EventPassportIssued), events[0].Action)
	assert.Equal(t, string(audit.EventStampAdded), events[1].Action)
	assert.Equal(t, 3, store.Len())

	events[0].Action = "tampered"
	again, err := store.ListByPassport(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, string(audit.EventPassportIssued), again[0].Action)

	events, err = store.ListByPassport(ctx, id.NewPassportID())
	require.NoError(t, err)
	assert.Empty(t, events)
}
