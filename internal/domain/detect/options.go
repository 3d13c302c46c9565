package detect

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithRelevanceFloor sets the minimum relevance worth evaluating.
func WithRelevanceFloor(floor float64) Option {
	return func(d *Detector) {
		if floor >= 0 && floor <= 1 {
			d.relevanceFloor = floor
		}
	}
}

// WithConfidenceThreshold sets the minimum confidence gate.
func WithConfidenceThreshold(threshold float64) Option {
	return func(d *Detector) {
		if threshold >= 0 && threshold <= 1 {
			d.confidenceThreshold = threshold
		}
	}
}

// WithMinMargin sets the minimum price discrepancy gate.
func WithMinMargin(margin float64) Option {
	return func(d *Detector) {
		if margin >= 0 && margin <= 1 {
			d.minMargin = margin
		}
	}
}
