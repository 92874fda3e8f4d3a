package panel

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/statuspanel/pkg/config"
	"github.com/robotalks/statuspanel/pkg/display"
	"github.com/robotalks/statuspanel/pkg/led"
	"github.com/robotalks/statuspanel/pkg/sensor"
)

// OpenADC creates the converter selected by the configuration.
func OpenADC(cfg *config.Config) (sensor.ADC, error) {
	switch cfg.ADC.Driver {
	case "sim":
		scale := sensor.Scale{
			ReferenceMV: cfg.Sampling.ReferenceMV,
			Resolution:  cfg.Sampling.Resolution,
			Gain:        sensor.Gain{Num: cfg.Sampling.GainNum, Den: cfg.Sampling.GainDen},
		}
		return sensor.NewSim(scale, int32(cfg.ADC.SimStep), cfg.ADC.SimFailEvery), nil
	case "iio":
		return &sensor.IIO{Path: cfg.ADC.IIOPath}, nil
	case "modbus":
		return &sensor.Modbus{
			Endpoint: cfg.ADC.ModbusEndpoint,
			UnitID:   cfg.ADC.ModbusUnit,
			Register: cfg.ADC.ModbusRegister,
		}, nil
	}
	return nil, fmt.Errorf("unknown ADC driver %q", cfg.ADC.Driver)
}

// OpenPin creates the indicator output selected by the configuration.
func OpenPin(cfg *config.Config) (led.Pin, error) {
	switch cfg.LED.Driver {
	case "sim":
		return &led.SimPin{OnChange: func(high bool) {
			glog.V(3).Infof("LED pin %v", high)
		}}, nil
	case "gpio":
		return led.OpenGPIO(cfg.LED.Pin)
	}
	return nil, fmt.Errorf("unknown LED driver %q", cfg.LED.Driver)
}

// OpenSink creates a display sink which doesn't need a window.
func OpenSink(cfg *config.Config) (display.Sink, error) {
	switch cfg.Display.Sink {
	case "log":
		return &display.LogSink{Level: 1}, nil
	case "none":
		return &display.MemorySink{}, nil
	}
	return nil, fmt.Errorf("display sink %q must be created by the caller", cfg.Display.Sink)
}
