package proxy

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Direct(t *testing.T) {
	c, err := NewHTTPClient("", 0)
	require.NoError(t, err)
	assert.Nil(t, c.Transport)
	assert.Equal(t, DefaultTimeout, c.Timeout)
}

func TestNewHTTPClient_Socks(t *testing.T) {
	c, err := NewHTTPClient("127.0.0.1:1080", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, tr.DialContext)
}
