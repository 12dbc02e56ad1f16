package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionUnmarshal(t *testing.T) {
	data := `{"id":"t1","type":"transfer","amount":50,"from":"bob","to":"alice","createdAt":"2026-08-01T10:00:00Z"}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(data), &tx))

	assert.Equal(t, "t1", tx.ID)
	assert.Equal(t, TypeTransfer, tx.Type)
	require.True(t, tx.Amount.Valid)
	assert.Equal(t, "50", tx.Amount.Decimal.String())
	assert.Equal(t, "bob", tx.From)
	assert.Equal(t, "alice", tx.To)
	assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), tx.CreatedAt)
}

func TestTransactionUnmarshalAltID(t *testing.T) {
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"_id":42,"type":"deposit","amount":"12.500"}`), &tx))

	assert.Equal(t, "42", tx.ID)
	require.True(t, tx.Amount.Valid)
	assert.Equal(t, "12.5", tx.Amount.Decimal.String())
}

func TestTransactionUnmarshalMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"garbage amount", `{"id":"t1","type":"deposit","amount":"not-a-number","createdAt":"2026-08-01T10:00:00Z"}`},
		{"negative amount", `{"id":"t1","type":"deposit","amount":-5,"createdAt":"2026-08-01T10:00:00Z"}`},
		{"missing amount", `{"id":"t1","type":"deposit","createdAt":"2026-08-01T10:00:00Z"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var tx Transaction
			require.NoError(t, json.Unmarshal([]byte(tc.data), &tx))
			assert.False(t, tx.Amount.Valid)
			assert.False(t, tx.CreatedAt.IsZero())
		})
	}
}

func TestTransactionUnmarshalTimestamps(t *testing.T) {
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(`{"id":"t1","type":"deposit","amount":1,"createdAt":1754042400000}`), &tx))
	assert.Equal(t, time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC), tx.CreatedAt)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"t2","type":"deposit","amount":1,"createdAt":"yesterday-ish"}`), &tx))
	assert.True(t, tx.CreatedAt.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"t3","type":"deposit","amount":1}`), &tx))
	assert.True(t, tx.CreatedAt.IsZero())
}

func TestUserUnmarshal(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","username":"Bob","displayImage":"http://x/bob.png"}`), &u))
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Bob", u.Username)

	require.NoError(t, json.Unmarshal([]byte(`{"_id":7,"username":"carol"}`), &u))
	assert.Equal(t, "7", u.ID)
	assert.Equal(t, "carol", u.Username)
}
