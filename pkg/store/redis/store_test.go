package redis

import (
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bromq-dev/mqttkit/pkg/store"
)

func TestNewStoreDefaults(t *testing.T) {
	s, err := NewStore(nil)
	require.NoError(t, err)
	assert.Equal(t, "mqtt:session:", s.keyPrefix)
	assert.NotNil(t, s.Client())
	assert.Equal(t, "mqtt:session:c1", s.key("c1"))
}

func TestNewStoreInjectedClient(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	s, err := NewStore(&Config{Client: client, KeyPrefix: "test:"})
	require.NoError(t, err)
	assert.Same(t, client, s.Client())
	assert.Equal(t, "test:c1", s.key("c1"))
}

func TestTTLFor(t *testing.T) {
	tests := []struct {
		name   string
		expiry uint32
		want   time.Duration
	}{
		{"zero means no expiry", 0, 0},
		{"never expires", 0xFFFFFFFF, 0},
		{"finite expiry", 3600, time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ttlFor(&store.Record{SessionExpiry: tt.expiry}))
		})
	}
}
