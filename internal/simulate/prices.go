// Package simulate generates reproducible synthetic price paths for demo data.
package simulate

import (
	"fmt"
	"math"

	"github.com/Alias1177/TradeVault/internal/calculate"
	"github.com/Alias1177/TradeVault/internal/model"
)

// LCG constants (Numerical Recipes)
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 0xffffffff
	minUniform    = 1e-10
)

// lcg is a 32-bit linear congruential stream of uniforms in [0, 1].
type lcg struct {
	state uint32
}

func newLCG(seed int64) *lcg {
	return &lcg{state: uint32(seed)}
}

func (g *lcg) next() float64 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return float64(g.state) / lcgModulus
}

// uniform never returns 0 so the log in Box-Muller stays finite.
func (g *lcg) uniform() float64 {
	if u := g.next(); u != 0 {
		return u
	}
	return minUniform
}

// normal draws one standard normal sample from two uniforms.
func (g *lcg) normal() float64 {
	u := g.uniform()
	v := g.uniform()
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// Generate produces `steps` closes of a geometric random walk. The same
// arguments always yield the same series. Stored closes are rounded to
// cents; the walk itself continues from the unrounded price.
func Generate(steps int, start, drift, volatility float64, seed int64) (model.PriceSeries, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps must be >= 1, got %d", model.ErrInvalidParameter, steps)
	}
	if !(start > 0) {
		return nil, fmt.Errorf("%w: start price must be > 0, got %v", model.ErrInvalidParameter, start)
	}
	if volatility < 0 || math.IsNaN(volatility) {
		return nil, fmt.Errorf("%w: volatility must be >= 0, got %v", model.ErrInvalidParameter, volatility)
	}

	g := newLCG(seed)
	price := start
	series := make(model.PriceSeries, steps)
	for i := range series {
		price *= math.Exp(drift + volatility*g.normal())
		series[i] = calculate.Round(price, 2)
	}
	return series, nil
}
