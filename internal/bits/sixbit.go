package bits

// sixbitChar maps a 6-bit value to its AIS ASCII character
// (ITU-R M.1371, Annex 5): 0-31 are '@' through '_', 32-63 are
// ' ' through '?'.
func sixbitChar(v uint32) byte {
	if v < 32 {
		return byte(v + 64)
	}
	return byte(v)
}

// Dearmor converts an AIVDM armored payload string to a bit buffer.
// Each payload character carries 6 bits; pad is the number of fill bits
// in the final character, which are dropped. Returns the packed bytes
// and the exact bit count.
func Dearmor(payload string, pad int) ([]byte, int) {
	nbits := len(payload) * 6
	if pad > 0 && pad < 6 {
		nbits -= pad
	}
	if nbits <= 0 {
		return nil, 0
	}
	out := make([]byte, (nbits+7)/8)
	for i := 0; i < len(payload); i++ {
		v := int(payload[i]) - 48
		if v > 40 {
			v -= 8
		}
		for j := 0; j < 6; j++ {
			bit := i*6 + j
			if bit >= nbits {
				break
			}
			if v&(1<<uint(5-j)) != 0 {
				out[bit/8] |= 1 << uint(7-bit%8)
			}
		}
	}
	return out, nbits
}

// SubBits copies n bits starting at bit offset off in data into a fresh
// MSB-aligned byte slice. Used to peel an embedded binary payload out of
// a full AIS message frame.
func SubBits(data []byte, off, n int) []byte {
	if n <= 0 {
		return nil
	}
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		src := off + i
		if src >= len(data)*8 {
			break
		}
		if data[src/8]&(1<<uint(7-src%8)) != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
