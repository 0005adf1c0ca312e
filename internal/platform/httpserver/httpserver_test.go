package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDerivesTimeoutsFromRequestTimeout(t *testing.T) {
	srv := New(":0", http.NotFoundHandler(), 30*time.Second)

	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, 30*time.Second, srv.ReadTimeout)
	assert.Greater(t, srv.WriteTimeout, srv.ReadTimeout, "handlers get to write their timeout response")
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
}
