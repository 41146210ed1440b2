package typesystem

import "iter"

// CartesianProduct lazily yields every combination that picks one element
// from each domain, the last domain varying fastest. Nothing is yielded if
// a domain is empty. Each yielded slice is freshly allocated.
func CartesianProduct(domains [][]Type) iter.Seq[[]Type] {
	return func(yield func([]Type) bool) {
		for _, d := range domains {
			if len(d) == 0 {
				return
			}
		}
		idx := make([]int, len(domains))
		for {
			combo := make([]Type, len(domains))
			for i, d := range domains {
				combo[i] = d[idx[i]]
			}
			if !yield(combo) {
				return
			}
			i := len(domains) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(domains[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}
