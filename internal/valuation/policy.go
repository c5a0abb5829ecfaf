package valuation

// FallbackPolicy controls what happens to a holding once every provider
// attempt for it has failed.
type FallbackPolicy int

const (
	// FallbackSynthetic substitutes a fixed synthetic valuation tagged
	// source=fallback, so aggregation never blocks on one instrument.
	FallbackSynthetic FallbackPolicy = iota

	// FallbackOmit drops the holding: it contributes zero to totals and
	// is absent from the detail list.
	FallbackOmit
)

// ParsePolicy maps a config string onto a FallbackPolicy. Anything other
// than "omit" means synthetic.
func ParsePolicy(s string) FallbackPolicy {
	if s == "omit" {
		return FallbackOmit
	}
	return FallbackSynthetic
}

func (p FallbackPolicy) String() string {
	if p == FallbackOmit {
		return "omit"
	}
	return "synthetic"
}
