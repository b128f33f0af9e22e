package transition

// FastOutSlowIn is the cubic-bezier(0.4, 0, 0.2, 1) curve used for tweens.
func FastOutSlowIn(t float64) float64 {
	return cubicBezier(0.4, 0, 0.2, 1, t)
}

func cubicBezier(x1, y1, x2, y2, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	sample := func(a1, a2, t float64) float64 {
		// B(t) for control points 0, a1, a2, 1
		u := 1 - t
		return 3*u*u*t*a1 + 3*u*t*t*a2 + t*t*t
	}

	// x(t) is monotonic for x1, x2 in [0, 1]
	lo, hi := 0.0, 1.0
	t := x
	for i := 0; i < 32; i++ {
		cur := sample(x1, x2, t)
		if cur < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return sample(y1, y2, t)
}
