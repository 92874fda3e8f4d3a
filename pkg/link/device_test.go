package link

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/statuspanel/pkg/config"
	"github.com/robotalks/statuspanel/pkg/display"
	"github.com/robotalks/statuspanel/pkg/led"
	"github.com/robotalks/statuspanel/pkg/panel"
	"github.com/robotalks/statuspanel/pkg/sensor"
)

func TestPanelDevice(t *testing.T) {
	pin := &led.SimPin{}
	p, err := panel.New(config.Default(), panel.Hardware{
		ADC:  sensor.ADCFunc(func() (int32, error) { return 0, errors.New("idle") }),
		Pin:  pin,
		Sink: &display.MemorySink{},
	})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	var dev Device = PanelDevice{Panel: p}
	callCtx, callCancel := context.WithTimeout(ctx, time.Second)
	defer callCancel()
	require.NoError(t, dev.SetOutputMode(callCtx, led.CommandOn))
	assert.True(t, pin.Level())
	assert.Equal(t, led.LabelOn, dev.Status().Label)

	require.NoError(t, dev.SetOutputMode(callCtx, 5))
	st := dev.Status()
	assert.Equal(t, led.LabelError, st.Label)
	assert.True(t, st.Fault)
	assert.Equal(t, uint64(2), p.Commands.Processed())
}

func TestDeviceRef(t *testing.T) {
	ref := DeviceRef{Type: "statuspanel", ID: "a1"}
	assert.True(t, ref.IsValid())
	assert.Equal(t, "statuspanel/a1", ref.Name())
	assert.False(t, DeviceRef{Type: "statuspanel"}.IsValid())
}
