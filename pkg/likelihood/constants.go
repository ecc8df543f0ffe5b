package likelihood

import "math"

// log(2*pi)
var log2Pi = math.Log(2 * math.Pi)

func DefaultJitterParams() JitterParams {
	return JitterParams{
		Initial: 1e-8,
		Growth:  10,
		Max:     1,
	}
}
