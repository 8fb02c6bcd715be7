//go:build tinygo

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

type direct struct{}

func (direct) Load32(addr uintptr) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (direct) Store32(addr uintptr, v uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}
