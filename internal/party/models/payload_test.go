package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-05-17")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("1990-05-17T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = ParseDate("17/05/1990")
	assert.Error(t, err)
	_, err = ParseDate("1990-02-30")
	assert.Error(t, err)
}

func TestDecodeValue(t *testing.T) {
	var media []ContactMedium
	err := DecodeValue([]any{
		map[string]any{"mediumType": "fax", "characteristic": map[string]any{"faxNumber": "+1555"}},
	}, &media)
	require.NoError(t, err)
	require.Len(t, media, 1)
	assert.Equal(t, MediumType("fax"), media[0].MediumType)

	err = DecodeValue([]any{map[string]any{"preferred": "yes"}}, &media)
	assert.Error(t, err)
}
