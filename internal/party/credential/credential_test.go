package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"partyhub/internal/party/models"
	dErrors "partyhub/pkg/domain-errors"
)

func TestNewHasherCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0).Cost())
	assert.Equal(t, DefaultCost, NewHasher(99).Cost())
	assert.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost).Cost())
}

func TestHashIsSaltedAndVerifiable(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("Secret123")
	require.NoError(t, err)
	second, err := h.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "Secret123")
	assert.NoError(t, Verify("Secret123", first))
	assert.NoError(t, Verify("Secret123", second))

	err = Verify("Secret124", first)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestHashRejectsBadInput(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	_, err := h.Hash("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = h.Hash(strings.Repeat("A1b", 30))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestSeal(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	t.Run("consumes staged password", func(t *testing.T) {
		pw := "Secret123"
		a := &models.AuthenticationPatch{Password: &pw}
		require.NoError(t, h.Seal(a))
		assert.Nil(t, a.Password)
		assert.True(t, a.Sealed())
		assert.NoError(t, Verify("Secret123", a.HashedPassword))
	})

	t.Run("nil patch is a no-op", func(t *testing.T) {
		assert.NoError(t, h.Seal(nil))
		assert.NoError(t, h.Seal(&models.AuthenticationPatch{}))
	})
}
