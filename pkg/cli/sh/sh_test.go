package sh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/led"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/msgs"
	"github.com/robotalks/statuspanel/pkg/panel"
)

func TestFormatMessage(t *testing.T) {
	st := panel.Status{Label: led.LabelOn, Mode: led.ModeOn, Millivolts: 1650, Percent: 50, Valid: true, Uptime: 2 * time.Second}
	testCases := []struct {
		msg    fx.Message
		json   bool
		expect string
	}{
		{msg: msgs.NewCommandOK(), expect: "OK"},
		{msg: msgs.NewCommandErrFromMsg("bad"), expect: "ERR bad"},
		{msg: msgs.NewStatus(st), expect: "ON, 1650 mV 50%, up 2s"},
		{msg: msgs.NewStatusEvent(panel.Status{Label: led.LabelOff}), expect: "OFF, no reading, up 0s"},
		{msg: msgs.NewStatus(st), json: true,
			expect: `{"label":"ON","mode":1,"millivolts":1650,"percent":50,"valid":true,"uptime":2000000000}`},
		{msg: msgs.NewCommandErrFromMsg("bad"), json: true, expect: `{"message":"bad"}`},
	}
	for _, tc := range testCases {
		out, err := FormatMessage(tc.msg, tc.json)
		require.NoError(t, err)
		assert.Equal(t, tc.expect, out)
	}
}

func TestFormatInfo(t *testing.T) {
	info := link.DeviceInfo{Ref: link.DeviceRef{Type: "statuspanel", ID: "a1"}}
	assert.Equal(t, "statuspanel/a1", FormatInfo(info))
	info.Meta.Description = "bench"
	assert.Equal(t, "statuspanel/a1: bench", FormatInfo(info))
}

type pendingFuture chan link.Result

func (f pendingFuture) ResultChan() <-chan link.Result { return f }

func TestAwait(t *testing.T) {
	f := make(pendingFuture, 1)
	res := Await(f, 10*time.Millisecond)
	assert.Error(t, res.Err)
	f <- link.Result{Msg: msgs.NewCommandOK()}
	res = Await(f, time.Second)
	require.NoError(t, res.Err)
	assert.IsType(t, &msgs.CommandOK{}, res.Msg)
}
