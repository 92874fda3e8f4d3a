package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/led"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/comm"
	"github.com/robotalks/statuspanel/pkg/link/msgs"
	"github.com/robotalks/statuspanel/pkg/panel"
)

func TestServer(t *testing.T) {
	modes := make(chan int32, 4)
	handler := link.CommandHandlerFunc(func(ctx context.Context, cmd link.Command) {
		switch m := cmd.Msg().(type) {
		case *msgs.SetMode:
			modes <- m.Mode
			cmd.Done(msgs.NewCommandOK())
		default:
			cmd.Done(msgs.NewStatus(panel.Status{Label: led.LabelOn}))
		}
	})
	mux := &comm.RegistrarMux{}
	server := NewServer("127.0.0.1:0", handler, mux)
	require.NoError(t, server.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- server.Run(ctx) }()

	conn, err := Dial("ws://" + server.ListenAddr().String() + Path)
	require.NoError(t, err)
	events := make(chan fx.Message, 4)
	conn.OnEvent(func(msg fx.Message) { events <- msg })
	go conn.Run(ctx)

	res := <-conn.DoCommand(msgs.NewSetMode(2)).ResultChan()
	require.NoError(t, res.Err)
	assert.IsType(t, &msgs.CommandOK{}, res.Msg)
	res = <-conn.DoCommand(&msgs.StatusQuery{}).ResultChan()
	require.NoError(t, res.Err)
	assert.Equal(t, led.LabelOn, res.Msg.(*msgs.Status).PanelStatus().Label)
	assert.Equal(t, int32(2), <-modes)

	require.Eventually(t, func() bool { return mux.Len() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, mux.SendEvent(ctx, msgs.NewStatusEvent(panel.Status{Label: led.LabelError})))
	select {
	case msg := <-events:
		assert.Equal(t, led.LabelError, msg.(*msgs.StatusEvent).PanelStatus().Label)
	case <-time.After(time.Second):
		t.Fatal("no status event")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("server didn't stop")
	}
}
