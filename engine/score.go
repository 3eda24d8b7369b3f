package engine

import "math"

// posInf is the weight sentinel stamped onto Phase A exact-key
// matches: ranking by key is total, so an exact hit must outrank every
// possible Phase B fuzzy score (spec.md §4.6 Phase A).
var posInf = math.Inf(1)

// lengthWeight implements L(tokenLen) = max(0, exp((tokenLen+S)/C) -
// exp(S/C) - M): longer tokens carry more evidence than short ones, and
// with the default constants the subtracted exp(S/C) and M terms zero
// out every token of four runes or fewer (spec.md §4.6 Phase B).
func (w Weights) lengthWeight(tokenLen int) float64 {
	v := math.Exp((float64(tokenLen)+w.S)/w.C) - math.Exp(w.S/w.C) - w.M
	if v < 0 {
		return 0
	}

	return v
}

// bucketFilter implements F(bucketSize) = C2/(bucketSize+H) + 0.5: a
// token shared by many reference rows is weak evidence for any single
// one of them, so its contribution is damped as the bucket grows
// (spec.md §4.6 Phase B).
func (w Weights) bucketFilter(bucketSize int) float64 {
	return w.C2/(float64(bucketSize)+w.H) + 0.5
}

// contribution is the weight a single token match contributes to a
// candidate: headerWeight * L(len(token)) * F(bucket.Size()).
func (w Weights) contribution(headerWeight float64, tokenLen, bucketSize int) float64 {
	return headerWeight * w.lengthWeight(tokenLen) * w.bucketFilter(bucketSize)
}
