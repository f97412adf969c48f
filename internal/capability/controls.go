package capability

// Slider is a host-adjustable parameter registered by compiled code. The
// scenario reads Value every frame; the control panel mutates it.
type Slider struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

// Adjust scales the slider within its bounds.
func (s *Slider) Adjust(factor float64) {
	v := s.Value * factor
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	s.Value = v
}

// Series is a bounded sample buffer fed by CONTROLS.plot.
type Series struct {
	Name    string
	samples []float64
}

func (s *Series) Samples() []float64 {
	out := make([]float64, len(s.samples))
	copy(out, s.samples)
	return out
}

const seriesCapacity = 240

// Controls is the control-panel registry shared between the capability
// table and the UI. All access happens on the frame loop's goroutine.
type Controls struct {
	sliders []*Slider
	series  []*Series
}

func NewControls() *Controls { return &Controls{} }

// Reset drops every registration; called on each remount.
func (c *Controls) Reset() {
	c.sliders = nil
	c.series = nil
}

// Slider registers (or re-fetches, by name) an adjustable parameter.
func (c *Controls) Slider(name string, value, min, max float64) *Slider {
	for _, s := range c.sliders {
		if s.Name == name {
			return s
		}
	}
	s := &Slider{Name: name, Value: value, Min: min, Max: max}
	c.sliders = append(c.sliders, s)
	return s
}

// Plot appends one sample to the named series, creating it on first use.
func (c *Controls) Plot(name string, sample float64) {
	for _, s := range c.series {
		if s.Name == name {
			s.push(sample)
			return
		}
	}
	s := &Series{Name: name}
	s.push(sample)
	c.series = append(c.series, s)
}

func (s *Series) push(v float64) {
	s.samples = append(s.samples, v)
	if len(s.samples) > seriesCapacity {
		s.samples = s.samples[len(s.samples)-seriesCapacity:]
	}
}

func (c *Controls) Sliders() []*Slider { return c.sliders }

// FirstSeries returns the series shown in the side panel, if any.
func (c *Controls) FirstSeries() *Series {
	if len(c.series) == 0 {
		return nil
	}
	return c.series[0]
}
