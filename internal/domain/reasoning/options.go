package reasoning

import "time"

// Option applies a configuration option to the Reasoner.
type Option func(*Reasoner)

// WithTimeout bounds each primary reasoning call.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Reasoner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithFallback replaces the fallback heuristic.
func WithFallback(f *Fallback) Option {
	return func(r *Reasoner) {
		if f != nil {
			r.fallback = f
		}
	}
}

// FallbackOption applies a configuration option to the Fallback heuristic.
type FallbackOption func(*Fallback)

// WithPolarityWords replaces the positive and negative keyword tables.
func WithPolarityWords(positive, negative []string) FallbackOption {
	return func(f *Fallback) {
		if len(positive) > 0 {
			f.positive = wordSet(positive...)
		}
		if len(negative) > 0 {
			f.negative = wordSet(negative...)
		}
	}
}

// WithStrongOverlap sets the overlap ratio above which the heuristic
// infers a direction instead of returning neutral.
func WithStrongOverlap(threshold float64) FallbackOption {
	return func(f *Fallback) {
		if threshold > 0 && threshold <= 1 {
			f.strongOverlap = threshold
		}
	}
}

// WithFallbackConfidence sets the fixed confidence assigned to fallback verdicts.
func WithFallbackConfidence(confidence float64) FallbackOption {
	return func(f *Fallback) {
		if confidence >= 0 && confidence <= 1 {
			f.confidence = confidence
		}
	}
}

// WithFallbackMagnitude sets the fixed magnitude assigned to fallback verdicts.
func WithFallbackMagnitude(magnitude float64) FallbackOption {
	return func(f *Fallback) {
		if magnitude >= 0 && magnitude <= 1 {
			f.magnitude = magnitude
		}
	}
}
