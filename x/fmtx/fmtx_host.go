//go:build !tinygo

package fmtx

import (
	"fmt"
	"io"
	"os"
)

// DefaultOutput receives Print and Printf.
var DefaultOutput io.Writer = os.Stdout

func Sprintf(format string, a ...any) string                    { return fmt.Sprintf(format, a...) }
func Printf(format string, a ...any) (int, error)               { return fmt.Fprintf(DefaultOutput, format, a...) }
func Fprintf(w io.Writer, format string, a ...any) (int, error) { return fmt.Fprintf(w, format, a...) }
func Errorf(format string, a ...any) error                      { return fmt.Errorf(format, a...) }
func Print(a ...any) (int, error)                               { return Fprint(DefaultOutput, a...) }

// Sprint separates every operand with a space, as the MCU build does.
func Sprint(a ...any) string {
	s := fmt.Sprintln(a...)
	return s[:len(s)-1]
}

func Fprint(w io.Writer, a ...any) (int, error) { return io.WriteString(w, Sprint(a...)) }
