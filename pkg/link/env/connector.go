package env

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/comm"
	"github.com/robotalks/statuspanel/pkg/link/comm/mqtt"
	"github.com/robotalks/statuspanel/pkg/link/comm/stream"
	"github.com/robotalks/statuspanel/pkg/link/comm/websocket"
)

// Environment variables for remote tools.
const (
	EnvType = "PANEL_TYPE"
	EnvID   = "PANEL_ID"
	EnvURL  = "PANEL_URL"
)

// Config provides common options to reach a panel.
type Config struct {
	Ref link.DeviceRef

	// URL is where the panel is reachable, one of
	//   mqtt://host:port/topic-prefix/
	//   tcp://host:port
	//   ws://host:port/ws
	URL string
}

// DefaultURL is the URL used without flags or environment.
const DefaultURL = "mqtt://localhost:1883/panel/"

// NewConfig creates a Config from the environment.
func NewConfig() *Config {
	c := &Config{
		Ref: link.DeviceRef{Type: "statuspanel"},
		URL: DefaultURL,
	}
	if val := os.Getenv(EnvType); val != "" {
		c.Ref.Type = val
	}
	if val := os.Getenv(EnvID); val != "" {
		c.Ref.ID = val
	}
	if val := os.Getenv(EnvURL); val != "" {
		c.URL = val
	}
	return c
}

// SetupFlags sets up command line flags.
func (c *Config) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Ref.Type, "panel-type", c.Ref.Type, "Panel type to connect.")
	fs.StringVar(&c.Ref.ID, "panel-id", c.Ref.ID, "Panel ID to connect.")
	fs.StringVar(&c.URL, "url", c.URL, "Panel URL (mqtt://, tcp:// or ws://).")
}

// NewConnector creates a Connector according to the URL scheme.
func (c *Config) NewConnector() (link.Connector, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid panel URL: %w", err)
	}
	switch u.Scheme {
	case "mqtt", "ssl":
		return mqtt.NewConnector(c.URL)
	case "tcp", "ws", "wss":
		return &DirectConnector{URL: u}, nil
	default:
		return nil, fmt.Errorf("unknown panel URL scheme: %q", u.Scheme)
	}
}

// Direct tells whether URL points at a single panel rather than a registry.
func (c *Config) Direct() bool {
	u, err := url.Parse(c.URL)
	return err == nil && (u.Scheme == "tcp" || u.Scheme == "ws" || u.Scheme == "wss")
}

// Connect directly connects to the panel.
func (c *Config) Connect(ctx context.Context) (link.DeviceConn, error) {
	connector, err := c.NewConnector()
	if err != nil {
		return nil, err
	}
	if !c.Direct() && !c.Ref.IsValid() {
		return nil, fmt.Errorf("panel type and id must be specified")
	}
	return connector.Connect(ctx, c.Ref)
}

// DirectConnector reaches a single panel listening on TCP or WebSocket.
type DirectConnector struct {
	URL *url.URL
}

// Discover implements Connector, reporting the only panel behind URL.
func (c *DirectConnector) Discover(ctx context.Context) ([]link.DeviceInfo, error) {
	return []link.DeviceInfo{{
		Ref:  link.DeviceRef{Type: c.URL.Scheme, ID: c.URL.Host},
		Meta: link.DeviceMeta{Description: c.URL.String()},
	}}, nil
}

// Connect implements Connector. ref is ignored.
func (c *DirectConnector) Connect(ctx context.Context, ref link.DeviceRef) (link.DeviceConn, error) {
	var (
		conn *comm.DeviceConn
		err  error
	)
	if c.URL.Scheme == "tcp" {
		conn, err = stream.Dial(ctx, c.URL.Host)
	} else {
		u := *c.URL
		if !strings.HasSuffix(u.Path, websocket.Path) {
			u.Path = strings.TrimSuffix(u.Path, "/") + websocket.Path
		}
		conn, err = websocket.Dial(u.String())
	}
	if err != nil {
		return nil, err
	}
	return conn, nil
}
