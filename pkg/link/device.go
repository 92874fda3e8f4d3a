package link

import (
	"context"
	"io"
	"strconv"

	"github.com/robotalks/statuspanel/pkg/panel"
)

// PanelDevice exposes a Panel as a Device. Remote commands go through
// the panel's command queue so they run at the command task priority
// like lines received from the console.
type PanelDevice struct {
	Panel *panel.Panel
}

// SetOutputMode implements Device.
func (d PanelDevice) SetOutputMode(ctx context.Context, command int) error {
	return d.Panel.Commands.Do(ctx, "led "+strconv.Itoa(command), io.Discard)
}

// Status implements Device.
func (d PanelDevice) Status() panel.Status {
	return d.Panel.Status()
}
