package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joao-ahah/centro-artesanato-api/internal/order"
)

func TestBuildOrderPlacedEvent(t *testing.T) {
	o := &order.Order{
		ID:      "o1",
		OwnerID: "owner-1",
		Lines: []order.Line{
			{ProductID: "p1", Name: "Vaso", UnitPrice: decimal.RequireFromString("100.00"), Quantity: 2},
		},
		Subtotal:   decimal.RequireFromString("200.00"),
		Total:      decimal.RequireFromString("215.90"),
		CouponCode: "PROMO20",
	}
	meta := PublishMetadata{CorrelationID: "corr-1", CausationID: "cause-1"}
	occurredAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	env := buildOrderPlacedEvent(o, meta, 7, occurredAt)

	assert.Equal(t, OrderPlacedEventName, env.EventName)
	assert.Equal(t, OrderPlacedEventVersion, env.EventVersion)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, "corr-1", env.CorrelationID)
	assert.Equal(t, "cause-1", env.CausationID)
	assert.Equal(t, "owner-1", env.PartitionKey)
	assert.Equal(t, int64(7), env.Sequence)
	assert.Equal(t, occurredAt, env.OccurredAt)
	require.Len(t, env.Payload.Lines, 1)
	assert.Equal(t, "p1", env.Payload.Lines[0].ProductID)

	// envelope must round-trip as JSON for consumers
	body, err := json.Marshal(env)
	require.NoError(t, err)
	var decoded EventEnvelope
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, env.EventID, decoded.EventID)
	assert.True(t, decoded.Payload.Total.Equal(o.Total))
}

func TestSequenceRepository(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSequenceRepository(mock)

	mock.ExpectQuery(`INSERT INTO event_sequences`).
		WithArgs("owner-1").
		WillReturnRows(pgxmock.NewRows([]string{"last_sequence"}).AddRow(int64(3)))

	seq, err := repo.NextSequence(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepositoryRequiresPartitionKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSequenceRepository(mock)

	_, err = repo.NextSequence(context.Background(), "")
	require.Error(t, err)
}
