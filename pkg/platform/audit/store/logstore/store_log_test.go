package logstore

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "partyhub/pkg/domain"
	audit "partyhub/pkg/platform/audit"
)

func TestAppendWritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	store := New(slog.New(slog.NewJSONHandler(&buf, nil)))

	partyID := id.NewPartyID()
	err := store.Append(context.Background(), audit.Event{
		Category:  audit.CategorySecurity,
		Action:    string(audit.EventEmailConflict),
		PartyKind: "organization",
		PartyID:   partyID,
		RequestID: "req-9",
	})
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "audit event", record["msg"])
	assert.Equal(t, "audit", record["component"])
	assert.Equal(t, "security", record["category"])
	assert.Equal(t, "party_email_conflict", record["action"])
	assert.Equal(t, partyID.String(), record["party_id"])
	assert.Equal(t, "req-9", record["request_id"])
	assert.NotContains(t, record, "client_ip")
}
