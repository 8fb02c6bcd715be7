//go:build !tinygo

package mmio

import (
	"sync/atomic"
	"unsafe"
)

// On the host, atomic loads/stores give the same no-elision, no-reorder
// guarantee volatile access gives on the MCU.
type direct struct{}

func (direct) Load32(addr uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (direct) Store32(addr uintptr, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}
