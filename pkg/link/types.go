// Package link connects a panel to remote controllers and monitors.
package link

import (
	"context"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/panel"
)

// Registrar publishes a device to remote peers.
type Registrar interface {
	// SendEvent sends an event to all peers.
	SendEvent(context.Context, fx.Message) error
}

// Command represents a received command to be processed.
type Command interface {
	Msg() fx.Message
	Done(fx.Message) error
}

// CommandHandler processes received commands.
// Every command must be completed with Done.
type CommandHandler interface {
	HandleCommand(context.Context, Command)
}

// CommandHandlerFunc is the func form of CommandHandler.
type CommandHandlerFunc func(context.Context, Command)

// HandleCommand implements CommandHandler.
func (f CommandHandlerFunc) HandleCommand(ctx context.Context, cmd Command) {
	f(ctx, cmd)
}

// Device is the panel as seen from remote peers.
type Device interface {
	// SetOutputMode applies an indicator command.
	SetOutputMode(ctx context.Context, command int) error
	// Status returns the current status.
	Status() panel.Status
}

// DeviceRef is a reference to a device.
type DeviceRef struct {
	// Type is device type.
	Type string
	// ID is unique ID of the device.
	ID string
}

// Name retrieves the name from ref.
func (r DeviceRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates DeviceRef is valid.
func (r DeviceRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// DeviceMeta provides metadata for a device.
type DeviceMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// DeviceInfo provides information of a device.
type DeviceInfo struct {
	Ref  DeviceRef
	Meta DeviceMeta
}

// Connector is used by remote tools to connect to a device.
type Connector interface {
	// Discover enumerates registered devices.
	Discover(context.Context) ([]DeviceInfo, error)
	// Connect connects to the specified device.
	Connect(context.Context, DeviceRef) (DeviceConn, error)
}

// DeviceConn is the connection to a device.
type DeviceConn interface {
	fx.Runnable
	// DoCommand executes a command.
	DoCommand(fx.Message) CommandFuture
	// OnEvent sets the handler receiving events from the device.
	OnEvent(func(fx.Message))
}

// Result represents result of a command.
type Result struct {
	Msg fx.Message
	Err error
}

// CommandFuture is the future of sent command.
type CommandFuture interface {
	ResultChan() <-chan Result
}
