package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	fx "github.com/robotalks/statuspanel/pkg/framework"
)

// Environment variables overriding configuration values.
const (
	EnvMQTTURL  = "PANEL_MQTT_URL"
	EnvDeviceID = "PANEL_ID"
)

// Config represents the panel configuration.
type Config struct {
	Sampling   SamplingConfig `yaml:"sampling"`
	ADC        ADCConfig      `yaml:"adc"`
	LED        LEDConfig      `yaml:"led"`
	Display    DisplayConfig  `yaml:"display"`
	Priorities PriorityConfig `yaml:"priorities"`
	Console    ConsoleConfig  `yaml:"console"`
	Link       LinkConfig     `yaml:"link"`
}

// SamplingConfig controls the sampling cadence and conversion.
type SamplingConfig struct {
	Period          time.Duration `yaml:"period"`
	FullScaleMV     int32         `yaml:"full_scale_mv"`
	ReferenceMV     int32         `yaml:"reference_mv"`
	Resolution      uint8         `yaml:"resolution"`
	GainNum         int32         `yaml:"gain_num"`
	GainDen         int32         `yaml:"gain_den"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	SnapshotTimeout time.Duration `yaml:"snapshot_timeout"`
}

// ADCConfig selects the converter driver.
type ADCConfig struct {
	Driver  string `yaml:"driver"` // sim, iio or modbus
	IIOPath string `yaml:"iio_path"`
	// Modbus TCP input register, e.g. on a remote I/O module.
	ModbusEndpoint string `yaml:"modbus_endpoint"`
	ModbusUnit     uint8  `yaml:"modbus_unit"`
	ModbusRegister uint16 `yaml:"modbus_register"`
	// Simulated converter parameters.
	SimStep      int `yaml:"sim_step"`
	SimFailEvery int `yaml:"sim_fail_every"` // 0 disables injected failures
}

// LEDConfig selects the indicator output.
type LEDConfig struct {
	Driver     string        `yaml:"driver"` // sim or gpio
	Pin        string        `yaml:"pin"`
	HalfPeriod time.Duration `yaml:"half_period"`
}

// DisplayConfig selects where frames go.
type DisplayConfig struct {
	Sink    string `yaml:"sink"` // log, window or none
	XOffset int    `yaml:"x_offset"`
	YOffset int    `yaml:"y_offset"`
	Scale   int    `yaml:"scale"`
}

// PriorityConfig holds task priorities, lower is more urgent.
type PriorityConfig struct {
	Renderer int `yaml:"renderer"`
	Sampler  int `yaml:"sampler"`
	Command  int `yaml:"command"`
	Blink    int `yaml:"blink"`
}

// ConsoleConfig contains command input configuration.
type ConsoleConfig struct {
	SerialPort string `yaml:"serial_port"`
	BaudRate   int    `yaml:"baud_rate"`
	Shell      bool   `yaml:"shell"`
	QueueSize  int    `yaml:"queue_size"`
}

// LinkConfig contains remote link configuration.
type LinkConfig struct {
	// MQTTURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTURL       string `yaml:"mqtt_url"`
	DeviceType    string `yaml:"device_type"`
	DeviceID      string `yaml:"device_id"`
	Description   string `yaml:"description"`
	WebSocketAddr string `yaml:"websocket_addr"`
	TCPAddr       string `yaml:"tcp_addr"`
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Sampling: SamplingConfig{
			Period:          500 * time.Millisecond,
			FullScaleMV:     3300,
			ReferenceMV:     3300,
			Resolution:      12,
			GainNum:         1,
			GainDen:         1,
			WriteTimeout:    100 * time.Millisecond,
			ReadTimeout:     10 * time.Millisecond,
			SnapshotTimeout: 100 * time.Millisecond,
		},
		ADC: ADCConfig{
			Driver:  "sim",
			IIOPath: "/sys/bus/iio/devices/iio:device0/in_voltage1_raw",
			SimStep: 97,
		},
		LED: LEDConfig{
			Driver:     "sim",
			Pin:        "GPIO17",
			HalfPeriod: 500 * time.Millisecond,
		},
		Display: DisplayConfig{
			Sink:    "log",
			XOffset: 10,
			YOffset: 10,
			Scale:   3,
		},
		Priorities: PriorityConfig{
			Renderer: 2,
			Sampler:  3,
			Command:  5,
			Blink:    6,
		},
		Console: ConsoleConfig{
			BaudRate:  115200,
			QueueSize: 10,
		},
		Link: LinkConfig{
			DeviceType:  "statuspanel",
			Description: "status panel",
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}
	cfg.ensureDefaults()
	cfg.ApplyEnv()
	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides values from environment variables.
func (c *Config) ApplyEnv() {
	if val := os.Getenv(EnvMQTTURL); val != "" {
		c.Link.MQTTURL = val
	}
	if val := os.Getenv(EnvDeviceID); val != "" {
		c.Link.DeviceID = val
	}
}

// SetupFlags binds command line flags overriding loaded values.
// Call it after Load and before flag parsing.
func (c *Config) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ADC.Driver, "adc", c.ADC.Driver, "ADC driver: sim, iio or modbus")
	fs.StringVar(&c.ADC.ModbusEndpoint, "adc-modbus", c.ADC.ModbusEndpoint, "Modbus TCP endpoint of the modbus ADC")
	fs.StringVar(&c.LED.Driver, "led", c.LED.Driver, "LED driver: sim or gpio")
	fs.StringVar(&c.LED.Pin, "led-pin", c.LED.Pin, "GPIO pin name of the LED")
	fs.StringVar(&c.Display.Sink, "display", c.Display.Sink, "Display sink: log, window or none")
	fs.StringVar(&c.Console.SerialPort, "serial", c.Console.SerialPort, "Serial port for line commands")
	fs.BoolVar(&c.Console.Shell, "shell", c.Console.Shell, "Run interactive shell")
	fs.StringVar(&c.Link.MQTTURL, "mqtt", c.Link.MQTTURL, "MQTT broker URL")
	fs.StringVar(&c.Link.DeviceID, "id", c.Link.DeviceID, "Device ID")
	fs.StringVar(&c.Link.WebSocketAddr, "ws", c.Link.WebSocketAddr, "WebSocket listen address")
	fs.StringVar(&c.Link.TCPAddr, "tcp", c.Link.TCPAddr, "TCP listen address")
}

// Validate checks values which have no sensible fallback.
func (c *Config) Validate() error {
	switch c.ADC.Driver {
	case "sim", "iio":
	case "modbus":
		if c.ADC.ModbusEndpoint == "" {
			return fmt.Errorf("modbus ADC requires an endpoint")
		}
	default:
		return fmt.Errorf("unknown ADC driver %q", c.ADC.Driver)
	}
	switch c.LED.Driver {
	case "sim", "gpio":
	default:
		return fmt.Errorf("unknown LED driver %q", c.LED.Driver)
	}
	switch c.Display.Sink {
	case "log", "window", "none":
	default:
		return fmt.Errorf("unknown display sink %q", c.Display.Sink)
	}
	if c.Sampling.Period <= 0 {
		return fmt.Errorf("invalid sampling period %v", c.Sampling.Period)
	}
	return c.Priorities.Validate()
}

// Validate requires each priority in range and the order
// renderer, sampler, command, blink from most to least urgent.
func (p PriorityConfig) Validate() error {
	levels := []struct {
		name string
		prio int
	}{
		{"renderer", p.Renderer},
		{"sampler", p.Sampler},
		{"command", p.Command},
		{"blink", p.Blink},
	}
	for i, lv := range levels {
		if lv.prio < fx.PrLvTop || lv.prio >= fx.PriorityLevels {
			return fmt.Errorf("%s priority %d out of range [%d, %d)", lv.name, lv.prio, fx.PrLvTop, fx.PriorityLevels)
		}
		if i > 0 && levels[i-1].prio >= lv.prio {
			return fmt.Errorf("%s priority %d must be more urgent than %s priority %d",
				levels[i-1].name, levels[i-1].prio, lv.name, lv.prio)
		}
	}
	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Sampling.Period == 0 {
		c.Sampling.Period = def.Sampling.Period
	}
	if c.Sampling.FullScaleMV == 0 {
		c.Sampling.FullScaleMV = def.Sampling.FullScaleMV
	}
	if c.Sampling.ReferenceMV == 0 {
		c.Sampling.ReferenceMV = def.Sampling.ReferenceMV
	}
	if c.Sampling.Resolution == 0 {
		c.Sampling.Resolution = def.Sampling.Resolution
	}
	if c.Sampling.GainNum == 0 {
		c.Sampling.GainNum = def.Sampling.GainNum
	}
	if c.Sampling.GainDen == 0 {
		c.Sampling.GainDen = def.Sampling.GainDen
	}
	if c.Sampling.WriteTimeout == 0 {
		c.Sampling.WriteTimeout = def.Sampling.WriteTimeout
	}
	if c.Sampling.ReadTimeout == 0 {
		c.Sampling.ReadTimeout = def.Sampling.ReadTimeout
	}
	if c.Sampling.SnapshotTimeout == 0 {
		c.Sampling.SnapshotTimeout = def.Sampling.SnapshotTimeout
	}

	if c.ADC.Driver == "" {
		c.ADC.Driver = def.ADC.Driver
	}
	if c.ADC.IIOPath == "" {
		c.ADC.IIOPath = def.ADC.IIOPath
	}
	if c.ADC.SimStep == 0 {
		c.ADC.SimStep = def.ADC.SimStep
	}

	if c.LED.Driver == "" {
		c.LED.Driver = def.LED.Driver
	}
	if c.LED.Pin == "" {
		c.LED.Pin = def.LED.Pin
	}
	if c.LED.HalfPeriod == 0 {
		c.LED.HalfPeriod = def.LED.HalfPeriod
	}

	if c.Display.Sink == "" {
		c.Display.Sink = def.Display.Sink
	}
	if c.Display.Scale == 0 {
		c.Display.Scale = def.Display.Scale
	}

	if c.Priorities == (PriorityConfig{}) {
		c.Priorities = def.Priorities
	}

	if c.Console.BaudRate == 0 {
		c.Console.BaudRate = def.Console.BaudRate
	}
	if c.Console.QueueSize == 0 {
		c.Console.QueueSize = def.Console.QueueSize
	}

	if c.Link.DeviceType == "" {
		c.Link.DeviceType = def.Link.DeviceType
	}
	if c.Link.Description == "" {
		c.Link.Description = def.Link.Description
	}
}
