package sensor

// DefaultFullScaleMV is the voltage mapped to 100 percent.
const DefaultFullScaleMV int32 = 3300

// Reading is the latest sensor conversion result.
// Percent is always Percent(Millivolts, full scale); Valid is false until
// the first successful conversion.
type Reading struct {
	Millivolts int32
	Percent    uint8
	Valid      bool
}

// NewReading builds a valid Reading from a millivolt value.
func NewReading(mv, fullScaleMV int32) Reading {
	return Reading{Millivolts: mv, Percent: Percent(mv, fullScaleMV), Valid: true}
}

// Percent maps millivolts into [0, 100], rounding to nearest.
// Non-positive inputs map to 0.
func Percent(mv, fullScaleMV int32) uint8 {
	if mv <= 0 || fullScaleMV <= 0 {
		return 0
	}
	fs := int64(fullScaleMV)
	p := (int64(mv)*100 + fs/2) / fs
	if p > 100 {
		p = 100
	}
	return uint8(p)
}
