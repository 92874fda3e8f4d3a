package led

import "sync"

// Pin is a digital output.
type Pin interface {
	Set(high bool) error
}

// SimPin records levels instead of driving hardware.
type SimPin struct {
	OnChange func(high bool)

	lock    sync.Mutex
	level   bool
	writes  int
	toggles int
}

// Set implements Pin.
func (p *SimPin) Set(high bool) error {
	p.lock.Lock()
	changed := p.level != high
	p.level = high
	p.writes++
	if changed {
		p.toggles++
	}
	fn := p.OnChange
	p.lock.Unlock()
	if changed && fn != nil {
		fn(high)
	}
	return nil
}

// Level returns the current level.
func (p *SimPin) Level() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.level
}

// Toggles returns the number of level changes.
func (p *SimPin) Toggles() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.toggles
}

// Writes returns the number of Set calls.
func (p *SimPin) Writes() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.writes
}
