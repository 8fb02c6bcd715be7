//go:build tinygo

package fmtx

import (
	"io"

	"mcuhal/x/conv"
)

// DefaultOutput receives Print and Printf. Firmware points it at a UART.
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func Sprintf(format string, a ...any) string {
	var b builder
	b.format(format, a)
	return string(b.buf)
}

func Printf(format string, a ...any) (int, error) { return Fprintf(DefaultOutput, format, a...) }

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	var b builder
	b.format(format, a)
	return w.Write(b.buf)
}

func Errorf(format string, a ...any) error { return stringError(Sprintf(format, a...)) }

func Sprint(a ...any) string {
	var b builder
	for i, v := range a {
		if i > 0 {
			b.buf = append(b.buf, ' ')
		}
		b.value(v, 'v', 0, false)
	}
	return string(b.buf)
}

func Fprint(w io.Writer, a ...any) (int, error) { return io.WriteString(w, Sprint(a...)) }

func Print(a ...any) (int, error) { return Fprint(DefaultOutput, a...) }

type stringError string

func (e stringError) Error() string { return string(e) }

// builder handles %s %d %x %X %v %t %% with an optional 0 flag and width,
// which covers register and counter dumps.
type builder struct {
	buf     []byte
	scratch [24]byte
}

func (b *builder) format(format string, args []any) {
	ai := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.buf = append(b.buf, c)
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			b.buf = append(b.buf, '%')
			continue
		}
		zero := false
		if i < len(format) && format[i] == '0' {
			zero = true
			i++
		}
		width := 0
		for i < len(format) && '0' <= format[i] && format[i] <= '9' {
			width = width*10 + int(format[i]-'0')
			i++
		}
		if i >= len(format) || ai >= len(args) {
			return
		}
		b.value(args[ai], format[i], width, zero)
		ai++
	}
}

func (b *builder) value(v any, verb byte, width int, zero bool) {
	var s []byte
	switch x := v.(type) {
	case string:
		s = []byte(x)
	case []byte:
		s = x
	case bool:
		if x {
			s = []byte("true")
		} else {
			s = []byte("false")
		}
	case error:
		s = []byte(x.Error())
	case interface{ String() string }:
		s = []byte(x.String())
	default:
		n, signed, ok := integer(v)
		switch {
		case !ok:
			s = []byte("<?>")
		case verb == 'x' || verb == 'X':
			s = conv.Hex(b.scratch[:], n, 0)
			if verb == 'x' {
				lower(s)
			}
		case signed:
			s = conv.Itoa(b.scratch[:], int64(n))
		default:
			s = conv.Utoa(b.scratch[:], n)
		}
	}
	pad := byte(' ')
	if zero {
		pad = '0'
	}
	for k := len(s); k < width; k++ {
		b.buf = append(b.buf, pad)
	}
	b.buf = append(b.buf, s...)
}

func integer(v any) (n uint64, signed, ok bool) {
	switch x := v.(type) {
	case int:
		return uint64(x), true, true
	case int8:
		return uint64(x), true, true
	case int16:
		return uint64(x), true, true
	case int32:
		return uint64(x), true, true
	case int64:
		return uint64(x), true, true
	case uint:
		return uint64(x), false, true
	case uint8:
		return uint64(x), false, true
	case uint16:
		return uint64(x), false, true
	case uint32:
		return uint64(x), false, true
	case uint64:
		return x, false, true
	case uintptr:
		return uint64(x), false, true
	}
	return 0, false, false
}

func lower(s []byte) {
	for i, c := range s {
		if 'A' <= c && c <= 'F' {
			s[i] = c + 'a' - 'A'
		}
	}
}
