package msgs

import (
	"time"

	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/led"
	"github.com/robotalks/statuspanel/pkg/panel"
	pb "github.com/robotalks/statuspanel/pkg/proto/panel/v1"
)

// CommandOK is the generic reply indicating success for commands.
type CommandOK struct {
	pb.CommandOK
}

// NewCommandOK creates a CommandOK.
func NewCommandOK() *CommandOK {
	return &CommandOK{}
}

// NewMessage implements Message.
func (m *CommandOK) NewMessage() fx.Message { return &CommandOK{} }

// TypeID implements SerializableMessage.
func (m *CommandOK) TypeID() uint32 { return CommandOKTypeID }

// Serializable implements SerializableMessage.
func (m *CommandOK) Serializable() proto.Message { return &m.CommandOK }

// CommandErr is the generic message representing command error.
type CommandErr struct {
	pb.CommandErr
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return NewCommandErrFromMsg(err.Error())
}

// NewCommandErrFromMsg creates a CommandErr.
func NewCommandErrFromMsg(message string) *CommandErr {
	return &CommandErr{
		CommandErr: pb.CommandErr{
			Message: message,
		},
	}
}

// NewMessage implements Message.
func (m *CommandErr) NewMessage() fx.Message { return &CommandErr{} }

// TypeID implements SerializableMessage.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// Serializable implements SerializableMessage.
func (m *CommandErr) Serializable() proto.Message { return &m.CommandErr }

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// SetMode command.
type SetMode struct {
	pb.SetMode
}

// NewSetMode creates a SetMode.
func NewSetMode(mode int) *SetMode {
	return &SetMode{SetMode: pb.SetMode{Mode: int32(mode)}}
}

// NewMessage implements Message.
func (m *SetMode) NewMessage() fx.Message { return &SetMode{} }

// TypeID implements SerializableMessage.
func (m *SetMode) TypeID() uint32 { return SetModeTypeID }

// Serializable implements SerializableMessage.
func (m *SetMode) Serializable() proto.Message { return &m.SetMode }

// StatusQuery command.
type StatusQuery struct {
	pb.StatusQuery
}

// NewMessage implements Message.
func (m *StatusQuery) NewMessage() fx.Message { return &StatusQuery{} }

// TypeID implements SerializableMessage.
func (m *StatusQuery) TypeID() uint32 { return StatusQueryTypeID }

// Serializable implements SerializableMessage.
func (m *StatusQuery) Serializable() proto.Message { return &m.StatusQuery }

// Status replies StatusQuery.
type Status struct {
	pb.Status
}

// NewStatus creates a Status from a panel status.
func NewStatus(st panel.Status) *Status {
	return &Status{Status: statusPB(st)}
}

// NewMessage implements Message.
func (m *Status) NewMessage() fx.Message { return &Status{} }

// TypeID implements SerializableMessage.
func (m *Status) TypeID() uint32 { return StatusTypeID }

// Serializable implements SerializableMessage.
func (m *Status) Serializable() proto.Message { return &m.Status }

// PanelStatus converts back into a panel status.
func (m *Status) PanelStatus() panel.Status {
	return panelStatus(&m.Status)
}

// StatusEvent is published after the panel redraws.
type StatusEvent struct {
	pb.Status
}

// NewStatusEvent creates a StatusEvent from a panel status.
func NewStatusEvent(st panel.Status) *StatusEvent {
	return &StatusEvent{Status: statusPB(st)}
}

// NewMessage implements Message.
func (m *StatusEvent) NewMessage() fx.Message { return &StatusEvent{} }

// TypeID implements SerializableMessage.
func (m *StatusEvent) TypeID() uint32 { return StatusEventTypeID }

// Serializable implements SerializableMessage.
func (m *StatusEvent) Serializable() proto.Message { return &m.Status }

// PanelStatus converts back into a panel status.
func (m *StatusEvent) PanelStatus() panel.Status {
	return panelStatus(&m.Status)
}

func statusPB(st panel.Status) pb.Status {
	return pb.Status{
		Label:      st.Label,
		Mode:       int32(st.Mode),
		Fault:      st.Fault,
		Millivolts: st.Millivolts,
		Percent:    uint32(st.Percent),
		Valid:      st.Valid,
		UptimeMs:   st.Uptime.Milliseconds(),
	}
}

func panelStatus(m *pb.Status) panel.Status {
	return panel.Status{
		Label:      m.Label,
		Mode:       led.Mode(m.Mode),
		Fault:      m.Fault,
		Millivolts: m.Millivolts,
		Percent:    uint8(m.Percent),
		Valid:      m.Valid,
		Uptime:     time.Duration(m.UptimeMs) * time.Millisecond,
	}
}

// TypeID Groups
const (
	GroupCommand uint32 = 0x00000000
	GroupPanel   uint32 = 0x00010000
	GroupCustom  uint32 = 0x7f000000 // base group id for custom messages.
)

// TypeIDs
const (
	CommandOKTypeID   uint32 = GroupCommand | TypeIDMaskReply | 0x0000
	CommandErrTypeID  uint32 = GroupCommand | TypeIDMaskReply | 0x0001
	SetModeTypeID     uint32 = GroupPanel | 0x0001
	StatusQueryTypeID uint32 = GroupPanel | 0x0002
	StatusTypeID      uint32 = StatusQueryTypeID | TypeIDMaskReply
	StatusEventTypeID uint32 = TypeIDKindEvent | GroupPanel | 0x0003
)
