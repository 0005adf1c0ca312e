package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresBrokers(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestNewAppliesTopic(t *testing.T) {
	// kgo does not dial until the first request.
	store, err := New([]string{"127.0.0.1:9092"}, WithTopic("custom.audit"), WithClientID("test"))
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, "custom.audit", store.Topic())

	fallback, err := New([]string{"127.0.0.1:9092"}, WithTopic(""))
	require.NoError(t, err)
	defer fallback.Close()
	assert.Equal(t, DefaultTopic, fallback.Topic())
}
