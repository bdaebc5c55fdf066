package crush

// hashMul is a prime close to 2^32/phi, for Fibonacci hashing (also known as
// Knuth's multiplicative hash).
const hashMul = 2654435761

// hash3 hashes the three bytes starting at src[pos] down to the given number
// of bits.  Multiplying spreads the 24-bit prefix across the full 32-bit
// product, and the top bits of the product are the best mixed, so those are
// the ones kept.
func hash3(src []byte, pos uint, bits uint) uint {
	val := uint32(src[pos]) | uint32(src[pos+1])<<8 | uint32(src[pos+2])<<16

	return uint((val * hashMul) >> (32 - bits))
}
