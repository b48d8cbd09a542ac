package naming

import "strconv"

// sourceHash computes the content hash a handler id embeds: a 32-bit
// rolling hash accumulated as h = 31*h + byte with two's-complement
// wraparound, rendered as the lowercase hex of its absolute value. The
// absolute value is taken after widening so the minimum int32 maps to
// 2^31 rather than overflowing.
func sourceHash(source string) string {
	var h int32
	for i := 0; i < len(source); i++ {
		h = h*31 + int32(source[i])
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 16)
}

// handlerID combines a handler name with its source hash.
func handlerID(name, hash string) string {
	return name + "_" + hash
}
