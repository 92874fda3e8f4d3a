// Package v1 holds the wire messages described in panel.proto.
// The types follow the layout protoc-gen-go v1.3 produces so the
// golang/protobuf table driven codec can marshal them.
package v1

import (
	proto "github.com/golang/protobuf/proto"
)

// Reference imports to suppress errors if they are not otherwise used.
var _ = proto.Marshal

// This is a compile-time assertion to ensure that this package is
// compatible with the proto package it is being compiled against.
const _ = proto.ProtoPackageIsVersion3

// Typed wraps an encoded message with its type ID.
type Typed struct {
	TypeId               uint32   `protobuf:"varint,1,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
	Sequence             uint32   `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Message              []byte   `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Typed) Reset()         { *m = Typed{} }
func (m *Typed) String() string { return proto.CompactTextString(m) }
func (*Typed) ProtoMessage()    {}

func (m *Typed) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_Typed.Unmarshal(m, b)
}
func (m *Typed) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_Typed.Marshal(b, m, deterministic)
}
func (m *Typed) XXX_Merge(src proto.Message) {
	xxx_messageInfo_Typed.Merge(m, src)
}
func (m *Typed) XXX_Size() int {
	return xxx_messageInfo_Typed.Size(m)
}
func (m *Typed) XXX_DiscardUnknown() {
	xxx_messageInfo_Typed.DiscardUnknown(m)
}

var xxx_messageInfo_Typed proto.InternalMessageInfo

func (m *Typed) GetTypeId() uint32 {
	if m != nil {
		return m.TypeId
	}
	return 0
}

func (m *Typed) GetSequence() uint32 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

func (m *Typed) GetMessage() []byte {
	if m != nil {
		return m.Message
	}
	return nil
}

// CommandOK is the generic reply for a successful command.
type CommandOK struct {
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *CommandOK) Reset()         { *m = CommandOK{} }
func (m *CommandOK) String() string { return proto.CompactTextString(m) }
func (*CommandOK) ProtoMessage()    {}

func (m *CommandOK) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_CommandOK.Unmarshal(m, b)
}
func (m *CommandOK) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_CommandOK.Marshal(b, m, deterministic)
}
func (m *CommandOK) XXX_Merge(src proto.Message) {
	xxx_messageInfo_CommandOK.Merge(m, src)
}
func (m *CommandOK) XXX_Size() int {
	return xxx_messageInfo_CommandOK.Size(m)
}
func (m *CommandOK) XXX_DiscardUnknown() {
	xxx_messageInfo_CommandOK.DiscardUnknown(m)
}

var xxx_messageInfo_CommandOK proto.InternalMessageInfo

// CommandErr is the generic reply for a failed command.
type CommandErr struct {
	Message              string   `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *CommandErr) Reset()         { *m = CommandErr{} }
func (m *CommandErr) String() string { return proto.CompactTextString(m) }
func (*CommandErr) ProtoMessage()    {}

func (m *CommandErr) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_CommandErr.Unmarshal(m, b)
}
func (m *CommandErr) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_CommandErr.Marshal(b, m, deterministic)
}
func (m *CommandErr) XXX_Merge(src proto.Message) {
	xxx_messageInfo_CommandErr.Merge(m, src)
}
func (m *CommandErr) XXX_Size() int {
	return xxx_messageInfo_CommandErr.Size(m)
}
func (m *CommandErr) XXX_DiscardUnknown() {
	xxx_messageInfo_CommandErr.DiscardUnknown(m)
}

var xxx_messageInfo_CommandErr proto.InternalMessageInfo

func (m *CommandErr) GetMessage() string {
	if m != nil {
		return m.Message
	}
	return ""
}

// SetMode sets the indicator mode: 0 off, 1 on, 2 blinking.
type SetMode struct {
	Mode                 int32    `protobuf:"varint,1,opt,name=mode,proto3" json:"mode,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *SetMode) Reset()         { *m = SetMode{} }
func (m *SetMode) String() string { return proto.CompactTextString(m) }
func (*SetMode) ProtoMessage()    {}

func (m *SetMode) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_SetMode.Unmarshal(m, b)
}
func (m *SetMode) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_SetMode.Marshal(b, m, deterministic)
}
func (m *SetMode) XXX_Merge(src proto.Message) {
	xxx_messageInfo_SetMode.Merge(m, src)
}
func (m *SetMode) XXX_Size() int {
	return xxx_messageInfo_SetMode.Size(m)
}
func (m *SetMode) XXX_DiscardUnknown() {
	xxx_messageInfo_SetMode.DiscardUnknown(m)
}

var xxx_messageInfo_SetMode proto.InternalMessageInfo

func (m *SetMode) GetMode() int32 {
	if m != nil {
		return m.Mode
	}
	return 0
}

// StatusQuery asks for the current Status.
type StatusQuery struct {
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *StatusQuery) Reset()         { *m = StatusQuery{} }
func (m *StatusQuery) String() string { return proto.CompactTextString(m) }
func (*StatusQuery) ProtoMessage()    {}

func (m *StatusQuery) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_StatusQuery.Unmarshal(m, b)
}
func (m *StatusQuery) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_StatusQuery.Marshal(b, m, deterministic)
}
func (m *StatusQuery) XXX_Merge(src proto.Message) {
	xxx_messageInfo_StatusQuery.Merge(m, src)
}
func (m *StatusQuery) XXX_Size() int {
	return xxx_messageInfo_StatusQuery.Size(m)
}
func (m *StatusQuery) XXX_DiscardUnknown() {
	xxx_messageInfo_StatusQuery.DiscardUnknown(m)
}

var xxx_messageInfo_StatusQuery proto.InternalMessageInfo

// Status is the panel status, sent as a reply and as an event.
type Status struct {
	Label                string   `protobuf:"bytes,1,opt,name=label,proto3" json:"label,omitempty"`
	Mode                 int32    `protobuf:"varint,2,opt,name=mode,proto3" json:"mode,omitempty"`
	Fault                bool     `protobuf:"varint,3,opt,name=fault,proto3" json:"fault,omitempty"`
	Millivolts           int32    `protobuf:"varint,4,opt,name=millivolts,proto3" json:"millivolts,omitempty"`
	Percent              uint32   `protobuf:"varint,5,opt,name=percent,proto3" json:"percent,omitempty"`
	Valid                bool     `protobuf:"varint,6,opt,name=valid,proto3" json:"valid,omitempty"`
	UptimeMs             int64    `protobuf:"varint,7,opt,name=uptime_ms,json=uptimeMs,proto3" json:"uptime_ms,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Status) Reset()         { *m = Status{} }
func (m *Status) String() string { return proto.CompactTextString(m) }
func (*Status) ProtoMessage()    {}

func (m *Status) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_Status.Unmarshal(m, b)
}
func (m *Status) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_Status.Marshal(b, m, deterministic)
}
func (m *Status) XXX_Merge(src proto.Message) {
	xxx_messageInfo_Status.Merge(m, src)
}
func (m *Status) XXX_Size() int {
	return xxx_messageInfo_Status.Size(m)
}
func (m *Status) XXX_DiscardUnknown() {
	xxx_messageInfo_Status.DiscardUnknown(m)
}

var xxx_messageInfo_Status proto.InternalMessageInfo

func (m *Status) GetLabel() string {
	if m != nil {
		return m.Label
	}
	return ""
}

func (m *Status) GetMode() int32 {
	if m != nil {
		return m.Mode
	}
	return 0
}

func (m *Status) GetFault() bool {
	if m != nil {
		return m.Fault
	}
	return false
}

func (m *Status) GetMillivolts() int32 {
	if m != nil {
		return m.Millivolts
	}
	return 0
}

func (m *Status) GetPercent() uint32 {
	if m != nil {
		return m.Percent
	}
	return 0
}

func (m *Status) GetValid() bool {
	if m != nil {
		return m.Valid
	}
	return false
}

func (m *Status) GetUptimeMs() int64 {
	if m != nil {
		return m.UptimeMs
	}
	return 0
}

func init() {
	proto.RegisterType((*Typed)(nil), "panel.v1.Typed")
	proto.RegisterType((*CommandOK)(nil), "panel.v1.CommandOK")
	proto.RegisterType((*CommandErr)(nil), "panel.v1.CommandErr")
	proto.RegisterType((*SetMode)(nil), "panel.v1.SetMode")
	proto.RegisterType((*StatusQuery)(nil), "panel.v1.StatusQuery")
	proto.RegisterType((*Status)(nil), "panel.v1.Status")
}
