package solow

import (
	"fmt"
	"math"
)

type Production int

const (
	CobbDouglas Production = iota
	CES
)

var productionNames = map[Production]string{
	CobbDouglas: "cobb_douglas",
	CES:         "ces",
}

func (p Production) String() string {
	if name, ok := productionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Production(%d)", int(p))
}

func ParseProduction(name string) (Production, error) {
	for p, n := range productionNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown production function: %q (want cobb_douglas or ces)", name)
}

// rho is the CES substitution exponent; zero means Cobb-Douglas.
func rho(sigma float64) float64 {
	r := (sigma - 1) / sigma
	if math.Abs(r) < 1e-12 {
		return 0
	}
	return r
}

func cobbDouglas(k, alpha float64) float64 {
	return math.Pow(k, alpha)
}

func ces(k, alpha, sigma float64) float64 {
	r := rho(sigma)
	if r == 0 {
		return cobbDouglas(k, alpha)
	}
	return math.Pow(alpha*math.Pow(k, r)+(1-alpha), 1/r)
}
