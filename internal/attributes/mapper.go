// Package attributes derives display attributes for a digit: a resonance
// frequency, an HSL colour and a gateway flag.
//
// Every attribute is a pure function of the digit and the mapper's
// configuration, so the same digit always yields the same bundle.
package attributes

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"harmonic/internal/digit"
	"harmonic/internal/logging"
	"harmonic/internal/pattern"
)

// Config holds the injectable constants of the mapper.
type Config struct {
	FrequencyBase int // Hz per unit digit (default: 432)
	HueStep       int // degrees per unit digit (default: 36)
	Saturation    int // percent (default: 70)
	Lightness     int // percent (default: 50)
}

// DefaultConfig returns the stock constants.
func DefaultConfig() Config {
	return Config{
		FrequencyBase: 432,
		HueStep:       36,
		Saturation:    70,
		Lightness:     50,
	}
}

// Validate checks the constants are in range.
func (c Config) Validate() error {
	if c.FrequencyBase <= 0 {
		return fmt.Errorf("%w: frequency base must be positive, got %d", digit.ErrInvalidArgument, c.FrequencyBase)
	}
	if c.HueStep < 0 {
		return fmt.Errorf("%w: hue step must be non-negative, got %d", digit.ErrInvalidArgument, c.HueStep)
	}
	if c.Saturation < 0 || c.Saturation > 100 {
		return fmt.Errorf("%w: saturation must be in [0, 100], got %d", digit.ErrInvalidArgument, c.Saturation)
	}
	if c.Lightness < 0 || c.Lightness > 100 {
		return fmt.Errorf("%w: lightness must be in [0, 100], got %d", digit.ErrInvalidArgument, c.Lightness)
	}
	return nil
}

// Color is an HSL tuple: hue in degrees, saturation and lightness in percent.
type Color struct {
	Hue        int `json:"hue"`
	Saturation int `json:"saturation"`
	Lightness  int `json:"lightness"`
}

// Tuple returns [hue, saturation, lightness].
func (c Color) Tuple() [3]int {
	return [3]int{c.Hue, c.Saturation, c.Lightness}
}

// Colorful converts to a go-colorful colour.
func (c Color) Colorful() colorful.Color {
	return colorful.Hsl(float64(c.Hue), float64(c.Saturation)/100, float64(c.Lightness)/100)
}

// Hex returns the sRGB hex form, e.g. "#d99126" for hsl(36, 70%, 50%).
func (c Color) Hex() string {
	return c.Colorful().Clamped().Hex()
}

// RGB returns 8-bit sRGB components.
func (c Color) RGB() (r, g, b uint8) {
	return c.Colorful().Clamped().RGB255()
}

// String renders CSS hsl() notation.
func (c Color) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.Hue, c.Saturation, c.Lightness)
}

// Bundle is the derived attribute record for one digit.
type Bundle struct {
	Digit     int   `json:"digit"`
	Frequency int   `json:"frequency"`
	Color     Color `json:"color"`
	IsGateway bool  `json:"is_gateway"`
}

// GatewaySource supplies the gateway patterns. *pattern.Registry satisfies it.
type GatewaySource interface {
	Gateways() []pattern.Pattern
}

// Mapper computes attribute bundles.
type Mapper struct {
	cfg      Config
	reducer  digit.Reducer
	gateways GatewaySource
}

// NewMapper validates cfg and builds a mapper. gateways may be nil, in which
// case no digit is a gateway.
func NewMapper(cfg Config, reducer digit.Reducer, gateways GatewaySource) (*Mapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Get(logging.CategoryAttributes).Debug("Mapper ready: frequency_base=%d hue_step=%d reducer=%s",
		cfg.FrequencyBase, cfg.HueStep, reducer)
	return &Mapper{cfg: cfg, reducer: reducer, gateways: gateways}, nil
}

// Config returns the mapper's constants.
func (m *Mapper) Config() Config {
	return m.cfg
}

// AttributesFor derives the bundle for d. Values outside [0,9] are reduced
// first; d itself is never rejected.
func (m *Mapper) AttributesFor(d int) Bundle {
	d = m.normalize(d)
	return Bundle{
		Digit:     d,
		Frequency: m.Frequency(d),
		Color:     m.Color(d),
		IsGateway: m.IsGateway(d),
	}
}

// AttributesForPair derives the bundle for the reduced sum of a and b.
func (m *Mapper) AttributesForPair(a, b int) Bundle {
	return m.AttributesFor(m.reducer.Reduce(a + b))
}

// Frequency returns FrequencyBase * d.
func (m *Mapper) Frequency(d int) int {
	return m.cfg.FrequencyBase * d
}

// Color returns the HSL colour of d.
func (m *Mapper) Color(d int) Color {
	hue := (d * m.cfg.HueStep) % 360
	if hue < 0 {
		hue += 360
	}
	return Color{Hue: hue, Saturation: m.cfg.Saturation, Lightness: m.cfg.Lightness}
}

// IsGateway reports whether any gateway pattern contains d.
func (m *Mapper) IsGateway(d int) bool {
	if m.gateways == nil {
		return false
	}
	for _, p := range m.gateways.Gateways() {
		if p.Contains(d) {
			return true
		}
	}
	return false
}

func (m *Mapper) normalize(d int) int {
	if d >= 0 && d <= 9 {
		return d
	}
	return m.reducer.Reduce(d)
}
