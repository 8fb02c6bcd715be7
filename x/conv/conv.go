// Package conv formats integers into caller buffers without fmt or strconv,
// for register dumps on MCU builds.
package conv

const hexDigits = "0123456789ABCDEF"

// Itoa writes the base-10 form of n at the end of buf and returns that tail.
// buf should hold 20 bytes for any int64.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	s := Utoa(buf, uint64(-n))
	i := len(buf) - len(s)
	if i == 0 {
		return s
	}
	buf[i-1] = '-'
	return buf[i-1:]
}

// Utoa writes the base-10 form of n at the end of buf and returns that tail.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	if i == 0 {
		return buf
	}
	if n == 0 {
		buf[i-1] = '0'
		return buf[i-1:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}

// Hex writes n in upper-case hex, zero-padded to at least digits, at the end
// of buf. Without 0x.
func Hex(buf []byte, n uint64, digits int) []byte {
	i := len(buf)
	for (n > 0 || digits > 0) && i > 0 {
		i--
		buf[i] = hexDigits[n&0xF]
		n >>= 4
		digits--
	}
	if i == len(buf) && i > 0 {
		i--
		buf[i] = '0'
	}
	return buf[i:]
}

// U32Hex writes a register word as 8 hex digits.
func U32Hex(buf []byte, n uint32) []byte {
	if len(buf) < 8 {
		return buf[:0]
	}
	return Hex(buf, uint64(n), 8)
}
