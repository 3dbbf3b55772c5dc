package risk

type direction int

const (
	above direction = iota
	below
)

// isSustained reports whether a series shows a sustained deviation past a
// threshold: the mean must cross the threshold AND at least sustainedRatio
// of individual readings must cross it. A single spike that drags the mean
// is rejected, as is a cluster of borderline readings whose mean stays in
// range. Returns the fraction of readings past the threshold either way.
func isSustained(values []float64, threshold float64, dir direction) (bool, float64) {
	if len(values) == 0 {
		return false, 0.0
	}

	avg := mean(values)

	exceeding := 0
	avgExceeds := false
	switch dir {
	case above:
		for _, v := range values {
			if v > threshold {
				exceeding++
			}
		}
		avgExceeds = avg > threshold
	case below:
		for _, v := range values {
			if v < threshold {
				exceeding++
			}
		}
		avgExceeds = avg < threshold
	}

	fraction := float64(exceeding) / float64(len(values))
	return avgExceeds && fraction >= sustainedRatio, fraction
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
