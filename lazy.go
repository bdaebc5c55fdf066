package crush

// packLazy is the greedy encoder with one-step lookahead used by levels 5
// through 9.
//
// At each position it asks the hash-chain finder for the best candidate,
// walking at most maxChain links.  A match shorter than goodLen is only
// accepted if the next position does not hold a strictly longer one;
// otherwise the current byte becomes a literal and parsing resumes at the
// next position with the already-computed match.  goodLen and maxChain trade
// speed for ratio from level to level.
func packLazy(src, dst []byte, workmem []uint, goodLen, maxChain uint) uint {
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

	bits := hashBitsFor(srcSize)
	lookup := workmem[:uint(1)<<bits]
	chain := workmem[uint(1)<<bits : (uint(1)<<bits)+srcSize]

	for i := range lookup {
		lookup[i] = noMatchPos
	}

	// enterTo records every position up to and including p in the lookup
	// table, linking it into the chain of prior positions with the same
	// hash.  Skipped match bytes pass through here too, so future lookups
	// see them.
	var nextEnter uint
	enterTo := func(p uint) {
		for nextEnter <= p {
			h := hash3(src, nextEnter, bits)
			chain[nextEnter] = lookup[h]
			lookup[h] = nextEnter
			nextEnter++
		}
	}

	// find walks the chain at pos, which must already be entered, and
	// returns the longest candidate.  Ties go to the nearest candidate,
	// which is the cheaper one to encode, because the chain is walked
	// nearest first and only strictly longer matches replace the best.
	find := func(pos uint) (matchLen, matchOffs uint) {
		lenLimit := srcSize - pos
		if lenLimit > maxMatch {
			lenLimit = maxMatch
		}

		threshold := uint(minMatch - 1)
		num := maxChain

		for cand := chain[pos]; cand != noMatchPos && num > 0; cand = chain[cand] {
			num--

			dist := pos - cand
			if dist > wSize {
				break
			}

			// Beyond tooFar a length-3 match costs more bits than
			// three literals, so insist on length 4 there.  The
			// chain is ordered nearest first, so once one candidate
			// is beyond tooFar the rest are too.
			if threshold < minMatch && dist > tooFar {
				threshold = minMatch
			}

			if threshold >= lenLimit || src[cand+threshold] != src[pos+threshold] {
				continue
			}

			var length uint
			for length < lenLimit && src[cand+length] == src[pos+length] {
				length++
			}

			if length > threshold {
				matchLen = length
				matchOffs = dist - 1
				if length == lenLimit {
					break
				}
				threshold = length
			}
		}

		return matchLen, matchOffs
	}

	var cur uint
	var nextLen, nextOffs uint
	haveNext := false

	for cur < srcSize {
		var curLen, curOffs uint

		switch {
		case haveNext:
			curLen, curOffs = nextLen, nextOffs
			haveNext = false
		case cur <= lastMatchPos:
			enterTo(cur)
			curLen, curOffs = find(cur)
		}

		if curLen >= minMatch && curLen < goodLen && cur+1 <= lastMatchPos {
			enterTo(cur + 1)
			nextLen, nextOffs = find(cur + 1)
			haveNext = true

			if nextLen > curLen {
				putLiteral(&lbw, src[cur])
				cur++
				continue
			}
		}

		if curLen >= minMatch {
			putMatch(&lbw, curOffs, curLen)
			cur += curLen
			haveNext = false
		} else {
			putLiteral(&lbw, src[cur])
			cur++
		}
	}

	return lbw.finalize()
}
