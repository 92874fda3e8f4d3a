package sensor

import (
	"errors"
	"fmt"
)

// ErrInvalidScale indicates a conversion configuration which can't be used.
var ErrInvalidScale = errors.New("invalid ADC scale")

// ADC performs a single analog-to-digital conversion.
// Raw values are converter counts, up to 16 bits unsigned.
type ADC interface {
	Read() (int32, error)
}

// ADCFunc is the func form of ADC.
type ADCFunc func() (int32, error)

// Read implements ADC.
func (f ADCFunc) Read() (int32, error) {
	return f()
}

// Gain is the rational input gain of the converter channel.
type Gain struct {
	Num int32
	Den int32
}

// Unity is gain 1.
var Unity = Gain{Num: 1, Den: 1}

// Scale converts raw samples into millivolts.
type Scale struct {
	ReferenceMV int32
	Resolution  uint8
	Gain        Gain
}

// DefaultScale is a 12-bit converter with a 3.3V reference and unity gain.
var DefaultScale = Scale{ReferenceMV: 3300, Resolution: 12, Gain: Unity}

// Validate checks the scale can convert.
func (s Scale) Validate() error {
	if s.ReferenceMV <= 0 {
		return fmt.Errorf("%w: reference %dmV", ErrInvalidScale, s.ReferenceMV)
	}
	if s.Resolution == 0 || s.Resolution > 16 {
		return fmt.Errorf("%w: resolution %d bits", ErrInvalidScale, s.Resolution)
	}
	if s.Gain.Num <= 0 || s.Gain.Den <= 0 {
		return fmt.Errorf("%w: gain %d/%d", ErrInvalidScale, s.Gain.Num, s.Gain.Den)
	}
	return nil
}

// Millivolts converts a raw sample.
// The effective reference is ReferenceMV divided by the gain, and the
// result is raw * reference >> resolution.
func (s Scale) Millivolts(raw int32) (int32, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	ref := int64(s.ReferenceMV) * int64(s.Gain.Den) / int64(s.Gain.Num)
	return int32((int64(raw) * ref) >> s.Resolution), nil
}

// Max returns the largest raw value at this resolution.
func (s Scale) Max() int32 {
	if s.Resolution == 0 || s.Resolution > 16 {
		return 0
	}
	return int32(1)<<s.Resolution - 1
}
