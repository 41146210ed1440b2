package typesystem

import "go.uber.org/zap"

// MergeUpperBounds adds each type of add to the upper bounds old and
// returns the minimal result: no bound in it is a proper supertype of
// another. Merging {Number, String} with {Integer} gives {Integer, String}.
// The input slices are not modified.
func (e *Engine) MergeUpperBounds(old, add []Type) []Type {
	bounds := NewTypeSet(old...)
	for _, candidate := range add {
		e.mergeBound(bounds, candidate, true)
	}
	return bounds.Slice()
}

// MergeLowerBounds is the dual of MergeUpperBounds: the result keeps the
// most general bounds. Merging {Integer, String} with {Number} gives
// {Number, String}.
func (e *Engine) MergeLowerBounds(old, add []Type) []Type {
	bounds := NewTypeSet(old...)
	for _, candidate := range add {
		e.mergeBound(bounds, candidate, false)
	}
	return bounds.Slice()
}

// mergeBound inserts candidate into bounds, dropping whatever the candidate
// makes redundant. Of two mutually assignable bounds the one already
// present is kept.
func (e *Engine) mergeBound(bounds *TypeSet, candidate Type, upper bool) {
	if bounds.Contains(candidate) {
		return
	}
	// weaker(a, b): a is implied by b.
	weaker := func(a, b Type) bool {
		if upper {
			return e.IsAssignable(a, b)
		}
		return e.IsAssignable(b, a)
	}

	var obsolete []Type
	for bound := range bounds.All() {
		if weaker(candidate, bound) {
			e.logger.Debug("obsolete bound",
				zap.Stringer("bound", candidate),
				zap.Stringer("implied_by", bound),
				zap.Bool("upper", upper))
			return
		}
		if weaker(bound, candidate) {
			obsolete = append(obsolete, bound)
		}
	}
	bounds.Insert(candidate)
	for _, o := range obsolete {
		e.logger.Debug("obsolete bound",
			zap.Stringer("bound", o),
			zap.Stringer("implied_by", candidate),
			zap.Bool("upper", upper))
		bounds.Remove(o)
	}
}
