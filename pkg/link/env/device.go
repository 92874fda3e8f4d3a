package env

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/statuspanel/pkg/config"
	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/comm"
	"github.com/robotalks/statuspanel/pkg/link/comm/mqtt"
	"github.com/robotalks/statuspanel/pkg/link/comm/stream"
	"github.com/robotalks/statuspanel/pkg/link/comm/websocket"
)

// Link is the device side of every configured transport.
// Status events published to Service go out through all of them.
type Link struct {
	Info      link.DeviceInfo
	Service   *comm.Service
	Registrar *comm.RegistrarMux
	Runners   []fx.Runnable
}

// NewLink creates a Link for dev from the link configuration.
// It returns nil without error if no transport is configured.
func NewLink(cfg config.LinkConfig, dev link.Device) (*Link, error) {
	if cfg.MQTTURL == "" && cfg.TCPAddr == "" && cfg.WebSocketAddr == "" {
		return nil, nil
	}
	l := &Link{
		Info: link.DeviceInfo{
			Ref:  link.DeviceRef{Type: cfg.DeviceType, ID: cfg.DeviceID},
			Meta: link.DeviceMeta{Description: cfg.Description},
		},
		Registrar: &comm.RegistrarMux{},
	}
	if l.Info.Ref.ID == "" {
		l.Info.Ref.ID = MachineID()
	}
	if !l.Info.Ref.IsValid() {
		return nil, fmt.Errorf("device type and id must be specified")
	}
	l.Service = comm.NewService(dev, l.Registrar)
	l.Runners = append(l.Runners, l.Service)
	if cfg.MQTTURL != "" {
		reg, err := mqtt.NewRegistrar(cfg.MQTTURL, l.Info, l.Service)
		if err != nil {
			return nil, fmt.Errorf("create MQTT registrar error: %w", err)
		}
		l.Registrar.Add(reg)
		l.Runners = append(l.Runners, reg)
	}
	if cfg.TCPAddr != "" {
		l.Runners = append(l.Runners, stream.NewServer(cfg.TCPAddr, l.Service, l.Registrar))
	}
	if cfg.WebSocketAddr != "" {
		l.Runners = append(l.Runners, websocket.NewServer(cfg.WebSocketAddr, l.Service, l.Registrar))
	}
	glog.Infof("link %s with %d transports", l.Info.Ref.Name(), len(l.Runners)-1)
	return l, nil
}
