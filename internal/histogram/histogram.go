// Package histogram builds equal-width histograms over float64 values.
package histogram

import "math"

// Bin is one histogram interval. Label is the midpoint of the bin's
// half-open interval [min + i*width, min + (i+1)*width).
type Bin struct {
	Label float64
	Count int
}

// Histogram is an ordered sequence of bins covering [min, max] of the
// values it was built from, with no gaps and no overlaps. Immutable by
// convention once returned from FromValues.
type Histogram []Bin

// FromValues bins values into numBins equal-width bins. An empty value
// set yields an empty histogram; this is a valid degenerate run, not an
// error. When every value is identical the bin width is zero and all
// values land in bin 0.
func FromValues(values []float64, numBins int) Histogram {
	if len(values) == 0 || numBins < 1 {
		return Histogram{}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	h := make(Histogram, numBins)
	for i := range h {
		h[i].Label = BinLabel(i, min, max, numBins)
	}
	for _, v := range values {
		h[BinIndex(v, min, max, numBins)].Count++
	}
	return h
}

// BinIndex returns the bin for x, with min <= x <= max. Scaling against
// the next representable value above max keeps the ratio for x == max
// below 1 in most ranges, but when |min| is near max the widening is
// under half an ulp of max-min and rounds away in the subtraction, so
// the ratio comes out exactly 1. The clamp is what guarantees the
// maximum observation lands in bin numBins-1 instead of one past the
// end. When max == min the ratio is 0 and every value resolves to
// bin 0.
func BinIndex(x, min, max float64, numBins int) int {
	span := math.Nextafter(max, math.Inf(1)) - min
	i := int(math.Floor((x - min) / span * float64(numBins)))
	if i >= numBins {
		i = numBins - 1
	}
	return i
}

// BinLabel returns the midpoint of bin i for the given range.
func BinLabel(i int, min, max float64, numBins int) float64 {
	width := (max - min) / float64(numBins)
	return min + float64(i)*width + width/2
}

// Labels returns the bin midpoints, ordered by bin index.
func (h Histogram) Labels() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.Label
	}
	return out
}

// Counts returns the per-bin counts, ordered by bin index.
func (h Histogram) Counts() []int {
	out := make([]int, len(h))
	for i, b := range h {
		out[i] = b.Count
	}
	return out
}
