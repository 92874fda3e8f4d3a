package mqtt

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/comm"
)

// Connector implements link.Connector using MQTT.
type Connector struct {
	DiscoverTimeout time.Duration

	options     *paho.ClientOptions
	topicPrefix string
}

// DefaultDiscoverTimeout defines the default timeout value of discovery.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// NewConnector creates a Connector.
func NewConnector(brokerURL string) (*Connector, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Connector{
		DiscoverTimeout: DefaultDiscoverTimeout,
		options:         opts,
		topicPrefix:     topicPrefix,
	}, nil
}

// ParseMeta converts a meta topic and its retained payload into DeviceInfo.
// An empty payload means the device has left.
func ParseMeta(topic string, payload []byte) (link.DeviceInfo, bool) {
	items := strings.Split(topic, "/")
	if len(items) != 3 || items[2] != "meta" || len(payload) == 0 {
		return link.DeviceInfo{}, false
	}
	info := link.DeviceInfo{Ref: link.DeviceRef{Type: items[0], ID: items[1]}}
	if err := json.Unmarshal(payload, &info.Meta); err != nil {
		glog.V(2).Infof("meta %q: %v", topic, err)
	}
	return info, info.Ref.IsValid()
}

// Discover implements Connector.
func (c *Connector) Discover(ctx context.Context) (res []link.DeviceInfo, err error) {
	q := NewQueue(c.options, c.topicPrefix)
	resCh := make(chan link.DeviceInfo, 16)
	done := make(chan struct{})
	q.Sub("+/+/meta", Handler(func(topic string, payload []byte) {
		if info, ok := ParseMeta(topic, payload); ok {
			select {
			case resCh <- info:
			case <-done:
			}
		}
	}))
	token := q.Connect()
	token.Wait()
	if err = token.Error(); err != nil {
		return
	}
	defer func() {
		close(done)
		q.Close()
	}()

	dur := c.DiscoverTimeout
	if dur == 0 {
		dur = DefaultDiscoverTimeout
	}
	timeout := time.After(dur)
	for {
		select {
		case info := <-resCh:
			res = append(res, info)
		case <-timeout:
			return
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
	}
}

// Connect implements Connector.
func (c *Connector) Connect(ctx context.Context, ref link.DeviceRef) (link.DeviceConn, error) {
	conn := &DeviceConn{Queue: NewQueue(c.options, c.topicPrefix)}
	conn.rw = NewPacketReadWriter(conn.Queue).ForConnector(ref)
	conn.Init(conn.rw)
	token := conn.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}
	return conn, nil
}

// DeviceConn implements DeviceConn using MQTT.
type DeviceConn struct {
	comm.DeviceConn
	Queue *Queue

	rw *ReadWriter
}

// Run implements Runnable.
func (c *DeviceConn) Run(ctx context.Context) error {
	defer c.Queue.Close()
	runner := fx.NewRunnerWith(ctx)
	runner.Go(c.rw, &c.DeviceConn)
	err := runner.Wait()
	if err == ctx.Err() {
		return nil
	}
	return err
}
