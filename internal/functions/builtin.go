package functions

import "math"

// Built-in implementations. Projects select or replace them through their
// FUNCTIONS descriptors; custom builds register more via Register.

func init() {
	mustRegister(SourceTimeFunction, "delta", SourceTimeFunc(deltaSTF))
	mustRegister(SourceTimeFunction, "ricker", SourceTimeFunc(rickerSTF))

	identity := ProcessFunc(func(samples []float64, dt float64, p Params) []float64 {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	})
	mustRegister(Processing, "identity", identity)
	mustRegister(ProcessSynthetics, "identity", identity)
	mustRegister(Preprocessing, "identity", identity)

	demean := ProcessFunc(func(samples []float64, dt float64, p Params) []float64 {
		out := make([]float64, len(samples))
		if len(samples) == 0 {
			return out
		}
		var mean float64
		for _, s := range samples {
			mean += s
		}
		mean /= float64(len(samples))
		for i, s := range samples {
			out[i] = s - mean
		}
		return out
	})
	mustRegister(Processing, "demean", demean)
	mustRegister(Preprocessing, "demean", demean)

	mustRegister(WindowPicking, "energy_ratio", WindowPickFunc(energyRatioPicker))
}

// deltaSTF is a unit impulse at the first sample.
func deltaSTF(npts int, dt float64, p Params) []float64 {
	out := make([]float64, npts)
	if npts > 0 {
		out[0] = 1.0
	}
	return out
}

// rickerSTF is a Ricker wavelet centered in the trace. The center frequency
// comes from the "center_frequency" parameter, defaulting to 0.025 Hz.
func rickerSTF(npts int, dt float64, p Params) []float64 {
	f := p.Float("center_frequency", 0.025)
	out := make([]float64, npts)
	t0 := float64(npts-1) * dt / 2
	for i := range out {
		t := float64(i)*dt - t0
		a := math.Pi * math.Pi * f * f * t * t
		out[i] = (1 - 2*a) * math.Exp(-a)
	}
	return out
}

// energyRatioPicker keeps contiguous stretches where the local data energy
// is within a factor ("max_ratio", default 10) of the synthetic energy,
// using a sliding window of "window_length_s" seconds (default 50).
func energyRatioPicker(data, synthetic []float64, dt float64, p Params) []PickedWindow {
	n := len(data)
	if len(synthetic) < n {
		n = len(synthetic)
	}
	if n == 0 || dt <= 0 {
		return nil
	}
	span := int(p.Float("window_length_s", 50) / dt)
	if span < 1 {
		span = 1
	}
	maxRatio := p.Float("max_ratio", 10)

	var wins []PickedWindow
	open := -1
	for start := 0; start < n; start += span {
		end := start + span
		if end > n {
			end = n
		}
		var ed, es float64
		for i := start; i < end; i++ {
			ed += data[i] * data[i]
			es += synthetic[i] * synthetic[i]
		}
		ok := es > 0 && ed > 0 && ed/es <= maxRatio && es/ed <= maxRatio
		if ok && open < 0 {
			open = start
		}
		if !ok && open >= 0 {
			wins = append(wins, PickedWindow{StartS: float64(open) * dt, EndS: float64(start) * dt})
			open = -1
		}
	}
	if open >= 0 {
		wins = append(wins, PickedWindow{StartS: float64(open) * dt, EndS: float64(n) * dt})
	}
	return wins
}
