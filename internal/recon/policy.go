package recon

// Policy holds the tolerance knobs for partial matches. The defaults mirror
// long-standing operational practice but are deliberately configurable.
type Policy struct {
	// AmountTolerance is the maximum relative difference between two monetary
	// amounts still considered a partial match.
	AmountTolerance float64
	// UdyamSuffixLen is how many trailing characters of a registration number
	// may drift while the field still counts as a partial match.
	UdyamSuffixLen int
	// HSNPrefixLen is the length of the commodity-code category prefix that
	// must agree for a partial match.
	HSNPrefixLen int
}

// DefaultPolicy returns the standard tolerances.
func DefaultPolicy() Policy {
	return Policy{
		AmountTolerance: 0.05,
		UdyamSuffixLen:  5,
		HSNPrefixLen:    4,
	}
}
