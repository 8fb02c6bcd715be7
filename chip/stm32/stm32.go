// Package stm32 provides the memory maps and register field catalogs of the
// STM32 sub-families.
//
// Each sub-family is a zero-size type implementing Family. Drivers are
// generic over Family and read every address and field from it, so the
// family chosen by the target package is the only one a build touches.
package stm32

import (
	"mcuhal/family"
	"mcuhal/mmio"
)

type Family interface {
	Descriptor() family.Descriptor
	MemoryMap() MemoryMap
	PWR() PWRCatalog
}

// MemoryMap holds peripheral base addresses. Zero means the family has no
// such peripheral.
type MemoryMap struct {
	RCC uintptr
	PWR uintptr
	RTC uintptr
	DAC uintptr
	ETH uintptr
}

// PWRCatalog locates the power-control fields. Absent fields have a zero mask.
type PWRCatalog struct {
	// Common to the classic CR/CSR layout.
	LPDS mmio.RegField
	PDDS mmio.RegField
	CWUF mmio.RegField
	CSBF mmio.RegField
	PVDE mmio.RegField
	PLS  mmio.RegField
	DBP  mmio.RegField
	WUF  mmio.RegField
	SBF  mmio.RegField
	PVDO mmio.RegField

	// Voltage scaling. VOSCodes[s-1] is the code for scale s, for
	// s <= VOSScales. At most one of VOSReady (wait until set) and VOSBusy
	// (wait until clear) is present.
	VOS       mmio.RegField
	VOSScales int
	VOSCodes  [3]uint32
	VOSReady  mmio.RegField
	VOSBusy   mmio.RegField

	// Backup regulator.
	BRE mmio.RegField
	BRR mmio.RegField

	// Over-drive.
	ODEN mmio.RegField

	FPDS mmio.RegField
}

func desc(id family.ID) family.Descriptor {
	d, _ := id.Descriptor()
	return d
}

type (
	F0 struct{}
	F1 struct{}
	F2 struct{}
	F3 struct{}
	F4 struct{}
	F7 struct{}
	L0 struct{}
	L1 struct{}
	L4 struct{}
)

func (F0) Descriptor() family.Descriptor { return desc(family.STM32F0) }
func (F1) Descriptor() family.Descriptor { return desc(family.STM32F1) }
func (F2) Descriptor() family.Descriptor { return desc(family.STM32F2) }
func (F3) Descriptor() family.Descriptor { return desc(family.STM32F3) }
func (F4) Descriptor() family.Descriptor { return desc(family.STM32F4) }
func (F7) Descriptor() family.Descriptor { return desc(family.STM32F7) }
func (L0) Descriptor() family.Descriptor { return desc(family.STM32L0) }
func (L1) Descriptor() family.Descriptor { return desc(family.STM32L1) }
func (L4) Descriptor() family.Descriptor { return desc(family.STM32L4) }

// Families lists one value of every STM32 family type, for tools and tests.
func Families() []Family {
	return []Family{F0{}, F1{}, F2{}, F3{}, F4{}, F7{}, L0{}, L1{}, L4{}}
}
