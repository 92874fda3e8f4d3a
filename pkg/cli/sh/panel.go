package sh

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/link/msgs"
	"github.com/robotalks/statuspanel/pkg/panel"
)

// FormatStatus prints a status in one line.
func FormatStatus(st panel.Status) string {
	reading := "no reading"
	if st.Valid {
		reading = fmt.Sprintf("%d mV %d%%", st.Millivolts, st.Percent)
	}
	return fmt.Sprintf("%s, %s, up %v", st.Label, reading, st.Uptime)
}

// FormatMessage prints a received message, as JSON if asJSON.
func FormatMessage(msg fx.Message, asJSON bool) (string, error) {
	var st *panel.Status
	switch m := msg.(type) {
	case *msgs.Status:
		s := m.PanelStatus()
		st = &s
	case *msgs.StatusEvent:
		s := m.PanelStatus()
		st = &s
	}
	if asJSON {
		var v interface{} = msg
		if st != nil {
			v = st
		} else if s, ok := msg.(msgs.SerializableMessage); ok {
			v = s.Serializable()
		}
		out, err := json.Marshal(v)
		return string(out), err
	}
	if st != nil {
		return FormatStatus(*st), nil
	}
	switch m := msg.(type) {
	case *msgs.CommandOK:
		return "OK", nil
	case *msgs.CommandErr:
		return "ERR " + m.Message, nil
	case msgs.SerializableMessage:
		return msgs.Name(msg) + " " + m.Serializable().String(), nil
	}
	return msgs.Name(msg), nil
}

var (
	// ModeCmd sets the LED output mode.
	ModeCmd = ishell.Cmd{
		Name:    "mode",
		Aliases: []string{"led", "m"},
		Help:    "0=OFF, 1=ON, 2=BLINK",
		Func: MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("exactly one mode expected"))
				return
			}
			mode, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid mode %q", c.Args[0]))
				return
			}
			DoCommand(c, msgs.NewSetMode(mode))
		}),
	}

	// StatusCmd queries the current status.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "show the panel status",
		Func: MustBeConnected(func(c *ishell.Context) {
			DoCommand(c, &msgs.StatusQuery{})
		}),
	}

	// EventsCmd turns printing of status events on or off.
	EventsCmd = ishell.Cmd{
		Name: "events",
		Help: "on|off",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) == 1 && c.Args[0] == "off" {
				s.Conn.Conn.OnEvent(nil)
				return
			}
			s.Conn.Conn.OnEvent(func(msg fx.Message) {
				if out, err := FormatMessage(msg, s.OutputJSON); err == nil {
					c.Println(out)
				}
			})
		}),
	}
)
