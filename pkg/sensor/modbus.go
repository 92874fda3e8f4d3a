package sensor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// DefaultModbusTimeout bounds a single register read.
const DefaultModbusTimeout = 200 * time.Millisecond

// Modbus reads raw samples from an input register of a Modbus TCP device,
// e.g. a remote I/O module in front of the analog input.
// The connection is opened on first Read and reopened after a failure.
type Modbus struct {
	Endpoint string
	UnitID   uint8
	Register uint16
	Timeout  time.Duration

	lock    sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Read implements ADC.
func (d *Modbus) Read() (int32, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.client == nil {
		if err := d.connect(); err != nil {
			return 0, err
		}
	}
	results, err := d.client.ReadInputRegisters(d.Register, 1)
	if err != nil {
		d.disconnect()
		return 0, fmt.Errorf("modbus %s register %d: %w", d.Endpoint, d.Register, err)
	}
	if len(results) != 2 {
		return 0, fmt.Errorf("modbus %s register %d: %d bytes returned", d.Endpoint, d.Register, len(results))
	}
	return int32(binary.BigEndian.Uint16(results)), nil
}

// Close implements io.Closer.
func (d *Modbus) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.disconnect()
}

func (d *Modbus) connect() error {
	if d.Endpoint == "" {
		return errors.New("modbus: endpoint required")
	}
	h := modbus.NewTCPClientHandler(d.Endpoint)
	h.Timeout = d.Timeout
	if h.Timeout <= 0 {
		h.Timeout = DefaultModbusTimeout
	}
	h.SlaveId = d.UnitID
	if err := h.Connect(); err != nil {
		return fmt.Errorf("modbus connect %s: %w", d.Endpoint, err)
	}
	d.handler, d.client = h, modbus.NewClient(h)
	return nil
}

func (d *Modbus) disconnect() error {
	if d.handler == nil {
		return nil
	}
	err := d.handler.Close()
	d.handler, d.client = nil, nil
	return err
}
