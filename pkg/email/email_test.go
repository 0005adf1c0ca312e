package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ana.silva+news@x.com", Normalize("  Ana.Silva+News@X.com "))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"Ana@x.com", "", "ana@X.COM ", "bob@y.org"})
	assert.Equal(t, []string{"ana@x.com", "bob@y.org"}, got)
}
