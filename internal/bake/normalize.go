package bake

// NormalizeOffsets rescales every offset channel (alpha excluded) into
// [0,1] in place using one shared affine transform for the whole
// dataset, and returns the extents needed to invert it:
//
//	original = normalized*(negExtent+posExtent) - negExtent
//
// A single shared transform is required because a shader can only
// undo the encoding with two scalars. Both extents clamp at zero so an
// all-positive or all-negative dataset keeps a correctly signed range,
// and a motionless dataset (span 0) divides by 1 instead of 0.
func NormalizeOffsets(offsets []float32) (negExtent, posExtent float32) {
	lowest := float32(0)
	highest := float32(0)
	for i, v := range offsets {
		if (i+1)%4 == 0 {
			continue // alpha
		}
		if v < lowest {
			lowest = v
		}
		if v > highest {
			highest = v
		}
	}

	negExtent = -lowest
	posExtent = highest

	span := negExtent + posExtent
	if span == 0 {
		span = 1
	}
	for i := range offsets {
		if (i+1)%4 == 0 {
			continue
		}
		offsets[i] = (offsets[i] + negExtent) / span
	}
	return negExtent, posExtent
}
