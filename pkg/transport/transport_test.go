package transport

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bromq-dev/mqttkit/pkg/options"
)

func TestHostPort(t *testing.T) {
	u, err := url.Parse("tcp://broker.example.com")
	require.NoError(t, err)
	assert.Equal(t, "broker.example.com:1883", hostPort(u, "1883"))

	u, err = url.Parse("ssl://broker.example.com:9999")
	require.NoError(t, err)
	assert.Equal(t, "broker.example.com:9999", hostPort(u, "8883"))
}

func TestNewDialer(t *testing.T) {
	d, err := NewDialer(nil)
	require.NoError(t, err)
	assert.Zero(t, d.Timeout)
	assert.Nil(t, d.TLS)

	opts := options.V5()
	opts.ConnectTimeout = 7 * time.Second
	opts.HTTPHeaders = http.Header{"Authorization": []string{"Bearer x"}}
	opts.HTTPProxy = "http://proxy.local:3128"
	opts.TLS = &options.TLS{InsecureSkipVerify: true}

	d, err = NewDialer(opts)
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, d.Timeout)
	assert.Equal(t, "Bearer x", d.Headers.Get("Authorization"))
	assert.Equal(t, "http://proxy.local:3128", d.Proxy)
	require.NotNil(t, d.TLS)
	assert.True(t, d.TLS.InsecureSkipVerify)

	t.Run("https proxy wins", func(t *testing.T) {
		o := options.NewConnect()
		o.HTTPProxy = "http://a:1"
		o.HTTPSProxy = "http://b:2"
		d, err := NewDialer(o)
		require.NoError(t, err)
		assert.Equal(t, "http://b:2", d.Proxy)
	})

	t.Run("bad TLS options", func(t *testing.T) {
		o := options.NewConnect()
		o.TLS = &options.TLS{CAFile: filepath.Join(t.TempDir(), "missing.pem")}
		_, err := NewDialer(o)
		assert.Error(t, err)
	})
}

func TestDialErrors(t *testing.T) {
	d := &Dialer{}

	_, err := d.Dial(context.Background(), "http://localhost:1883")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = d.Dial(context.Background(), "://bad")
	assert.Error(t, err)
}

func TestDialTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		io.Copy(conn, conn)
	}()

	d := &Dialer{}
	conn, err := d.Dial(context.Background(), "tcp://"+ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)

	buf := make([]byte, 4)
	_, err = io.ReadFull(conn, buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf))
}

func TestDialAny(t *testing.T) {
	// Reserve a port, then release it so the first URI reliably refuses.
	dead, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	deadAddr := dead.Addr().String()
	dead.Close()

	live, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer live.Close()
	go func() {
		for {
			conn, err := live.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	d := &Dialer{}
	conn, err := d.DialAny(context.Background(), []string{
		"tcp://" + deadAddr,
		"tcp://" + live.Addr().String(),
	})
	require.NoError(t, err)
	conn.Close()

	t.Run("all fail", func(t *testing.T) {
		_, err := d.DialAny(context.Background(), []string{"tcp://" + deadAddr, "bogus://x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedScheme)
		assert.Contains(t, err.Error(), deadAddr)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := d.DialAny(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNoServers)
	})
}

var testUpgrader = websocket.Upgrader{
	Subprotocols: []string{"mqtt"},
	CheckOrigin:  func(r *http.Request) bool { return true },
}

// echoHandler echoes every message back. With sendTextFirst it leads with
// a text frame, which MQTT clients must skip.
func echoHandler(sendTextFirst bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		if sendTextFirst {
			ws.WriteMessage(websocket.TextMessage, []byte("not mqtt"))
		}
		for {
			mt, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			if err := ws.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}
}

func TestDialWebSocket(t *testing.T) {
	srv := httptest.NewServer(echoHandler(false))
	defer srv.Close()

	d := &Dialer{}
	conn, err := d.Dial(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	defer conn.Close()

	wc, ok := conn.(*wsConn)
	require.True(t, ok)
	assert.Equal(t, "mqtt", wc.Subprotocol())

	_, err = conn.Write([]byte{0xC0, 0x00}) // PINGREQ
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	buf := make([]byte, 2)
	_, err = io.ReadFull(conn, buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC0, 0x00}, buf)
}

func TestWebSocketSkipsTextFrames(t *testing.T) {
	srv := httptest.NewServer(echoHandler(true))
	defer srv.Close()

	d := &Dialer{}
	conn, err := d.Dial(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte{0x01})
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	buf := make([]byte, 1)
	_, err = io.ReadFull(conn, buf)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), buf[0])
}

func TestDialSecureWebSocket(t *testing.T) {
	srv := httptest.NewTLSServer(echoHandler(false))
	defer srv.Close()

	d := &Dialer{TLS: &tls.Config{InsecureSkipVerify: true}}
	conn, err := d.Dial(context.Background(), "wss"+strings.TrimPrefix(srv.URL, "https"))
	require.NoError(t, err)
	conn.Close()
}
