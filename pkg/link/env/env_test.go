package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/statuspanel/pkg/config"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/comm/mqtt"
	"github.com/robotalks/statuspanel/pkg/link/comm/stream"
	"github.com/robotalks/statuspanel/pkg/link/comm/websocket"
	"github.com/robotalks/statuspanel/pkg/panel"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvType, "bench")
	t.Setenv(EnvID, "a1")
	t.Setenv(EnvURL, "tcp://127.0.0.1:7000")
	c := NewConfig()
	assert.Equal(t, link.DeviceRef{Type: "bench", ID: "a1"}, c.Ref)
	assert.Equal(t, "tcp://127.0.0.1:7000", c.URL)
}

func TestNewConnector(t *testing.T) {
	testCases := []struct {
		url    string
		expect interface{}
	}{
		{url: "mqtt://localhost:1883/panel/", expect: &mqtt.Connector{}},
		{url: "tcp://localhost:7000", expect: &DirectConnector{}},
		{url: "ws://localhost:8080/ws", expect: &DirectConnector{}},
		{url: "http://localhost:8080"},
		{url: "%zz"},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			c := &Config{URL: tc.url}
			connector, err := c.NewConnector()
			if tc.expect == nil {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tc.expect, connector)
		})
	}
}

func TestDirectDiscover(t *testing.T) {
	c := &Config{URL: "tcp://127.0.0.1:7000"}
	connector, err := c.NewConnector()
	require.NoError(t, err)
	infos, err := connector.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, link.DeviceRef{Type: "tcp", ID: "127.0.0.1:7000"}, infos[0].Ref)
}

func TestConnectRequiresRef(t *testing.T) {
	c := &Config{URL: "mqtt://localhost:1/panel/"}
	_, err := c.Connect(context.Background())
	assert.Error(t, err)
}

type nopDevice struct{}

func (nopDevice) SetOutputMode(context.Context, int) error { return nil }
func (nopDevice) Status() panel.Status                     { return panel.Status{} }

func TestNewLink(t *testing.T) {
	cfg := config.Default().Link
	l, err := NewLink(cfg, nopDevice{})
	require.NoError(t, err)
	assert.Nil(t, l)

	cfg.TCPAddr = "127.0.0.1:0"
	cfg.WebSocketAddr = "127.0.0.1:0"
	cfg.DeviceID = "a1"
	l, err = NewLink(cfg, nopDevice{})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "statuspanel/a1", l.Info.Ref.Name())
	require.Len(t, l.Runners, 3)
	assert.Equal(t, l.Service, l.Runners[0])
	assert.IsType(t, &stream.Server{}, l.Runners[1])
	assert.IsType(t, &websocket.Server{}, l.Runners[2])

	cfg.DeviceType = ""
	_, err = NewLink(cfg, nopDevice{})
	assert.Error(t, err)
}

func TestMachineID(t *testing.T) {
	assert.NotEmpty(t, MachineID())
}

func TestDirect(t *testing.T) {
	assert.True(t, (&Config{URL: "tcp://127.0.0.1:7000"}).Direct())
	assert.True(t, (&Config{URL: "ws://127.0.0.1:8080/ws"}).Direct())
	assert.False(t, (&Config{URL: DefaultURL}).Direct())
}
