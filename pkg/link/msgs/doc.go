// Package msgs provides the link protocol and all message schemas.
package msgs

// The link protocol is spoken between a panel and remote tools.
// Every packet is a Typed envelope: a type ID, a sequence number and the
// encoded message. Commands carry a non-zero sequence which the reply
// repeats; events carry none.
//
// Producer of events and replies: the panel
// Producer of commands: panelctl, panelmon and other remote tools
