// Package nrf provides the memory maps and UART register catalog of the
// Nordic nRF51 and nRF52 families.
package nrf

import (
	"mcuhal/family"
	"mcuhal/mmio"
)

type Family interface {
	Descriptor() family.Descriptor
	MemoryMap() MemoryMap
	UART() UARTCatalog
}

type MemoryMap struct {
	Clock uintptr
	Power uintptr
	UART0 uintptr
	GPIO  uintptr
}

// UARTCatalog describes the legacy (non-EasyDMA) UART block.
type UARTCatalog struct {
	TasksStartRX uintptr
	TasksStopRX  uintptr
	TasksStartTX uintptr
	TasksStopTX  uintptr
	EventsRXDRDY uintptr
	EventsTXDRDY uintptr
	EventsError  uintptr
	ErrorSrc     uintptr
	Enable       uintptr
	PselRTS      uintptr
	PselTXD      uintptr
	PselCTS      uintptr
	PselRXD      uintptr
	RXD          uintptr
	TXD          uintptr
	Baudrate     uintptr
	Config       uintptr

	EnableEnabled  uint32
	EnableDisabled uint32

	ConfigHWFC     mmio.Field[uint32]
	ConfigParity   mmio.Field[uint32]
	ParityIncluded uint32

	// Pins 0..MaxPin are connectable; PSEL takes PselDisconnected otherwise.
	MaxPin           uint8
	PselDisconnected uint32

	// 31250 and 56000 baud exist.
	ExtendedBauds bool
}

// Register layout shared by nRF51 and nRF52.
func legacyUART() UARTCatalog {
	return UARTCatalog{
		TasksStartRX: 0x000,
		TasksStopRX:  0x004,
		TasksStartTX: 0x008,
		TasksStopTX:  0x00C,
		EventsRXDRDY: 0x108,
		EventsTXDRDY: 0x11C,
		EventsError:  0x124,
		ErrorSrc:     0x480,
		Enable:       0x500,
		PselRTS:      0x508,
		PselTXD:      0x50C,
		PselCTS:      0x510,
		PselRXD:      0x514,
		RXD:          0x518,
		TXD:          0x51C,
		Baudrate:     0x524,
		Config:       0x56C,

		EnableEnabled:  4,
		EnableDisabled: 0,

		ConfigHWFC:     mmio.Bit[uint32](0),
		ConfigParity:   mmio.Field[uint32]{Mask: 0x7, Shift: 1},
		ParityIncluded: 0x7,

		MaxPin:           31,
		PselDisconnected: 0xFFFF_FFFF,
	}
}

type (
	NRF51 struct{}
	NRF52 struct{}
)

func (NRF51) Descriptor() family.Descriptor {
	d, _ := family.NRF51.Descriptor()
	return d
}

func (NRF51) MemoryMap() MemoryMap {
	return MemoryMap{Clock: 0x4000_0000, Power: 0x4000_0000, UART0: 0x4000_2000, GPIO: 0x5000_0000}
}

func (NRF51) UART() UARTCatalog { return legacyUART() }

func (NRF52) Descriptor() family.Descriptor {
	d, _ := family.NRF52.Descriptor()
	return d
}

func (NRF52) MemoryMap() MemoryMap {
	return MemoryMap{Clock: 0x4000_0000, Power: 0x4000_0000, UART0: 0x4000_2000, GPIO: 0x5000_0000}
}

func (NRF52) UART() UARTCatalog {
	c := legacyUART()
	c.ExtendedBauds = true
	return c
}

// Families lists one value of every nRF family type.
func Families() []Family { return []Family{NRF51{}, NRF52{}} }
