package crush

// packOptimal is the exhaustive encoder used by level 10.  It computes, for
// every position from the end of the buffer back to the start, the minimum
// bit cost of encoding the rest of the buffer, considering a literal and
// every match length reachable from an unbounded hash-chain search, then
// re-walks the chosen decomposition forward and emits it.
//
// The search is unbounded, so the worst case is O(srcSize * window) on highly
// repetitive input.
func packOptimal(src, dst []byte, workmem []uint) uint {
	srcSize := uint(len(src))

	if srcSize == 0 {
		return 0
	}

	var lbw lsbBitWriter
	lbw.init(dst)

	if srcSize < 4 {
		for _, ch := range src {
			putLiteral(&lbw, ch)
		}
		return lbw.finalize()
	}

	lastMatchPos := srcSize - minMatch

	// With a bit of careful ordering the arrays fit in the
	// optimalWorkmemSize bound.
	//
	// The lookup table is only needed in the first phase to build the hash
	// chains, so it overlaps mpos and mlen.  prev is consumed right to
	// left in the second phase, in the same order cost is filled in, so
	// those two overlap as well.  cost uses srcSize+1 elements, the last
	// of which lands on mpos[0], which is not assigned until the end.
	prev := workmem[0:srcSize]
	mpos := workmem[srcSize : 2*srcSize]
	mlen := workmem[2*srcSize : 3*srcSize]
	cost := workmem[0 : srcSize+1]

	bits := hashBitsFor(srcSize)
	lookup := workmem[srcSize : srcSize+(uint(1)<<bits)]

	// Phase 1: build hash chains in prev.
	for i := range lookup {
		lookup[i] = noMatchPos
	}

	for i := uint(0); i <= lastMatchPos; i++ {
		h := hash3(src, i, bits)
		prev[i] = lookup[h]
		lookup[h] = i
	}

	// The last two positions can only be literals.
	mlen[srcSize-2] = 1
	mlen[srcSize-1] = 1

	cost[srcSize] = 0
	cost[srcSize-1] = 9
	cost[srcSize-2] = 18

	// Phase 2: find the lowest cost path from each position to the end.
	for cur := lastMatchPos; cur > 0; cur-- {
		// prev was updated all the way to the end in phase 1, so no
		// need to hash again.
		pos := prev[cur]

		// Start with a literal.
		cost[cur] = cost[cur+1] + 9
		mlen[cur] = 1

		maxLen := uint(minMatch - 1)

		lenLimit := srcSize - cur
		if lenLimit > maxMatch {
			lenLimit = maxMatch
		}

		for ; pos != noMatchPos; pos = prev[pos] {
			if cur-pos > wSize {
				break
			}

			var length uint
			if maxLen < lenLimit && src[pos+maxLen] == src[cur+maxLen] {
				for length < lenLimit && src[pos+length] == src[cur+length] {
					length++
				}
			}

			// Candidates arrive nearest first, so a farther
			// candidate can never encode any length up to the
			// current maximum more cheaply; only the extension
			// needs costing.
			if length > maxLen {
				for i := maxLen + 1; i <= length; i++ {
					costHere := matchCost(cur-pos-1, i) + cost[cur+i]
					if costHere < cost[cur] {
						cost[cur] = costHere
						mpos[cur] = pos
						mlen[cur] = i
					}
				}

				if length == lenLimit {
					break
				}
				maxLen = length
			}
		}
	}

	mpos[0] = 0
	mlen[0] = 1

	// Phase 3: follow the lowest cost path, emitting tokens.
	for i := uint(0); i < srcSize; i += mlen[i] {
		if mlen[i] == 1 {
			putLiteral(&lbw, src[i])
		} else {
			putMatch(&lbw, i-mpos[i]-1, mlen[i])
		}
	}

	return lbw.finalize()
}
