package gamma

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/ease"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultBiggestStep is the biggest step of the Default table.
	DefaultBiggestStep = 100

	defaultGamma = 2.3
	defaultBits  = 8
)

// Default is a 101 step, gamma 2.3 brightness table for 8-bit outputs.
var Default = mustGenerate(defaultGamma, DefaultBiggestStep+1, defaultBits)

// curves are the easing functions selectable as "ease:<name>". Only monotonic curves
// are listed.
var curves = map[string]ease.Function{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-quart":     ease.InQuart,
	"out-quart":    ease.OutQuart,
	"in-out-quart": ease.InOutQuart,
	"in-quint":     ease.InQuint,
	"out-quint":    ease.OutQuint,
	"in-out-quint": ease.InOutQuint,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"in-expo":      ease.InExpo,
	"out-expo":     ease.OutExpo,
	"in-circ":      ease.InCirc,
	"out-circ":     ease.OutCirc,
}

// Generate builds a power-law brightness table with steps entries for an output of the
// given bit depth. Step 0 maps to 0 and step 1 maps to the first non-zero level: when the
// curve starts with several zeros it is stretched and its head dropped so the whole
// range stays usable.
func Generate(gamma float64, steps, bits int) (Slice, error) {
	if gamma <= 0 || math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return nil, errors.WithStackTrace(InvalidParam{Name: "gamma", Value: gamma})
	}
	if err := checkShape(steps, bits); err != nil {
		return nil, err
	}

	top := topLevel(bits)

	// samples below cut round to zero; the stretched curve settles near this many extra steps
	cut := math.Pow(0.5/top, 1/gamma)
	if estimate := cut * float64(steps-1) / (1 - cut); float64(steps)+estimate > maxTableLen {
		return nil, errors.WithStackTrace(InvalidTable{Reason: fmt.Sprintf("gamma %g needs more than %d samples", gamma, maxTableLen)})
	}

	values := roundCurve(powerCurve(steps, gamma), top)

	leading := 0
	for zeros := countZero(values); zeros > 1; zeros = countZero(values) {
		if zeros == len(values) {
			return nil, errors.WithStackTrace(InvalidTable{Reason: "curve never leaves zero"})
		}
		leading += zeros - 1
		if steps+leading > maxTableLen {
			return nil, errors.WithStackTrace(InvalidTable{Reason: fmt.Sprintf("gamma %g needs more than %d samples", gamma, maxTableLen)})
		}
		values = roundCurve(powerCurve(steps+leading, gamma), top)[leading:]
	}

	return values, nil
}

func mustGenerate(gamma float64, steps, bits int) Slice {
	table, err := Generate(gamma, steps, bits)
	if err != nil {
		panic(err)
	}
	return table
}

// Sine builds a quarter sine table from 0 to resolution over biggestStep+1 entries.
func Sine(biggestStep, resolution int) Slice {
	if biggestStep < 1 {
		biggestStep = 1
	}
	out := make(Slice, biggestStep+1)
	for x := range out {
		y := math.Sin(float64(x) / float64(2*biggestStep) * math.Pi)
		out[x] = uint16(clamp(math.RoundToEven(y*float64(resolution)), 0, float64(resolution)))
	}
	return out
}

// FromCurve samples an easing curve into a table with steps entries.
func FromCurve(fn ease.Function, steps, bits int) (Slice, error) {
	if fn == nil {
		return nil, errors.WithStackTrace(InvalidParam{Name: "curve", Value: nil})
	}
	if err := checkShape(steps, bits); err != nil {
		return nil, err
	}

	top := topLevel(bits)
	samples := make([]float64, steps)
	for i := range samples {
		samples[i] = fn(float64(i) / float64(steps-1))
	}
	table := roundCurve(samples, top)
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// SRGB builds a table following the sRGB transfer function, so equal steps look evenly
// spaced to the eye.
func SRGB(steps, bits int) (Slice, error) {
	if err := checkShape(steps, bits); err != nil {
		return nil, err
	}

	samples := make([]float64, steps)
	for i := range samples {
		v := float64(i) / float64(steps-1)
		r, _, _ := colorful.Color{R: v, G: v, B: v}.LinearRgb()
		samples[i] = r
	}
	return roundCurve(samples, topLevel(bits)), nil
}

// Lookup resolves a curve name into a Map. Names are "default", "none", "sine", "srgb",
// "gamma:<exponent>" and "ease:<function>". A zero steps or bits selects 101 steps and
// 8 bits.
func Lookup(name string, steps, bits int) (Map, error) {
	if steps == 0 {
		steps = DefaultBiggestStep + 1
	}
	if bits == 0 {
		bits = defaultBits
	}

	kind, arg, _ := strings.Cut(strings.ToLower(strings.TrimSpace(name)), ":")
	switch kind {
	case "", "default":
		return New(Default, DefaultBiggestStep), nil
	case "none":
		if err := checkShape(2, bits); err != nil {
			return Map{}, err
		}
		return Identity(uint16(topLevel(bits))), nil
	case "sine":
		if err := checkShape(steps, bits); err != nil {
			return Map{}, err
		}
		table := Sine(steps-1, int(topLevel(bits)))
		return New(table, table.BiggestStep()), nil
	case "srgb":
		table, err := SRGB(steps, bits)
		if err != nil {
			return Map{}, err
		}
		return New(table, table.BiggestStep()), nil
	case "gamma":
		g, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Map{}, errors.WithStackTrace(InvalidParam{Name: "gamma", Value: arg})
		}
		table, err := Generate(g, steps, bits)
		if err != nil {
			return Map{}, err
		}
		return New(table, table.BiggestStep()), nil
	case "ease":
		fn, ok := curves[arg]
		if !ok {
			return Map{}, errors.WithStackTrace(UnknownCurve{Name: name})
		}
		table, err := FromCurve(fn, steps, bits)
		if err != nil {
			return Map{}, err
		}
		return New(table, table.BiggestStep()), nil
	}

	return Map{}, errors.WithStackTrace(UnknownCurve{Name: name})
}

func checkShape(steps, bits int) error {
	if steps < 2 || steps > maxTableLen {
		return errors.WithStackTrace(InvalidParam{Name: "steps", Value: steps})
	}
	if bits < 1 || bits > 16 {
		return errors.WithStackTrace(InvalidParam{Name: "bits", Value: bits})
	}
	return nil
}

func topLevel(bits int) float64 {
	return float64(int(1)<<bits - 1)
}

// powerCurve returns n samples of x^gamma normalised to [0, 1].
func powerCurve(n int, gamma float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Pow(float64(i)/float64(n-1), gamma)
	}
	return out
}

func roundCurve(samples []float64, top float64) Slice {
	out := make(Slice, len(samples))
	for i, s := range samples {
		out[i] = uint16(clamp(math.RoundToEven(s*top), 0, top))
	}
	return out
}

func countZero(values Slice) int {
	for i, v := range values {
		if v != 0 {
			return i
		}
	}
	return len(values)
}
