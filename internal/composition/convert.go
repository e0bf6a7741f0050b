package composition

// WeightToAtomic converts a wt% composition to at%.
//
// Each positive value of a known element is divided by its atomic mass and the
// resulting mole counts are normalized to 100. Unknown and non-positive entries
// are dropped. If nothing qualifies, every input symbol maps to zero.
func WeightToAtomic(c Composition, t *MassTable) Composition {
	return normalize(c, t, func(v, mass float64) float64 { return v / mass })
}

// AtomicToWeight converts an at% composition to wt%.
//
// Each positive value of a known element is multiplied by its atomic mass and
// the resulting mass contributions are normalized to 100. Unknown and
// non-positive entries are dropped. If nothing qualifies, every input symbol
// maps to zero.
func AtomicToWeight(c Composition, t *MassTable) Composition {
	return normalize(c, t, func(v, mass float64) float64 { return v * mass })
}

// Convert applies the conversion selected by d.
func Convert(d Direction, c Composition, t *MassTable) Composition {
	if d == AtToWt {
		return AtomicToWeight(c, t)
	}
	return WeightToAtomic(c, t)
}

// normalize weighs every qualifying entry with fn and scales the weights to
// sum to Percent. Entries are visited in table order so the floating point
// total does not depend on map iteration order.
func normalize(c Composition, t *MassTable, fn func(v, mass float64) float64) Composition {
	weights := make(map[string]float64, len(c))
	var total float64
	if t != nil {
		for _, e := range t.elements {
			v, ok := c[e.Symbol]
			if !ok || !(v > 0) {
				continue
			}
			w := fn(v, e.Mass)
			weights[e.Symbol] = w
			total += w
		}
	}

	if total == 0 {
		zeros := make(Composition, len(c))
		for sym := range c {
			zeros[sym] = 0
		}
		return zeros
	}

	out := make(Composition, len(weights))
	for sym, w := range weights {
		out[sym] = w / total * Percent
	}
	return out
}
