// Package uart drives the legacy nRF UART block: pin/baud/parity
// configuration, blocking transmission and polled reception.
//
// A Port is a handle on one UART instance; every register it touches comes
// from the catalog of family F. The driver keeps no configuration state of its
// own. Ports are not safe for concurrent use: one goroutine (or one context,
// interrupt handlers included) owns a port at a time. uartio provides a
// serialising owner when sharing is needed.
package uart

import (
	"tinygo.org/x/drivers"

	"mcuhal/chip/nrf"
	"mcuhal/mmio"
)

// Pin is a GPIO index. Values above the family's MaxPin, PinNone included,
// mean "not connected" and are valid everywhere a Pin is accepted.
type Pin uint8

const PinNone Pin = 0xFF

// Config is the full line setup applied by Configure.
type Config struct {
	TX, RX   Pin
	RTS, CTS Pin
	Baud     Baud
	Parity   bool
}

type Port[F nrf.Family] struct {
	w mmio.Window
	c nrf.UARTCatalog
}

var _ drivers.UART = (*Port[nrf.NRF51])(nil)

// New returns the UART0 port of family F on bus.
func New[F nrf.Family](bus mmio.Bus) *Port[F] {
	var f F
	return &Port[F]{w: mmio.NewWindow(bus, f.MemoryMap().UART0), c: f.UART()}
}

// Base is the peripheral base address.
func (p *Port[F]) Base() uintptr { return p.w.Base() }

func (p *Port[F]) reg(off uintptr) mmio.Reg32 { return p.w.Reg(off) }

func (p *Port[F]) Enable()  { p.reg(p.c.Enable).Store(p.c.EnableEnabled) }
func (p *Port[F]) Disable() { p.reg(p.c.Enable).Store(p.c.EnableDisabled) }

func (p *Port[F]) Enabled() bool { return p.reg(p.c.Enable).Load() == p.c.EnableEnabled }

// Connected reports whether pin selects a physical pin on family F.
func (p *Port[F]) Connected(pin Pin) bool { return uint8(pin) <= p.c.MaxPin }

func (p *Port[F]) psel(pin Pin) uint32 {
	if p.Connected(pin) {
		return uint32(pin)
	}
	return p.c.PselDisconnected
}

// Configure writes all four pin selects, CONFIG and BAUDRATE. Flow control is
// enabled when at least one of RTS and CTS is connected.
func (p *Port[F]) Configure(cfg Config) {
	p.reg(p.c.PselTXD).Store(p.psel(cfg.TX))
	p.reg(p.c.PselRXD).Store(p.psel(cfg.RX))
	p.reg(p.c.PselRTS).Store(p.psel(cfg.RTS))
	p.reg(p.c.PselCTS).Store(p.psel(cfg.CTS))

	var config uint32
	if cfg.Parity {
		config |= p.c.ConfigParity.Value(p.c.ParityIncluded)
	}
	if p.Connected(cfg.RTS) || p.Connected(cfg.CTS) {
		config |= p.c.ConfigHWFC.Value(1)
	}
	p.reg(p.c.Config).Store(config)
	p.reg(p.c.Baudrate).Store(uint32(cfg.Baud))
}

// SetPins changes only the TX and RX pin selects.
func (p *Port[F]) SetPins(rx, tx Pin) {
	p.reg(p.c.PselTXD).Store(p.psel(tx))
	p.reg(p.c.PselRXD).Store(p.psel(rx))
}

// SetBaudRate changes only BAUDRATE.
func (p *Port[F]) SetBaudRate(b Baud) { p.reg(p.c.Baudrate).Store(uint32(b)) }

func (p *Port[F]) BaudRate() Baud { return Baud(p.reg(p.c.Baudrate).Load()) }

// The nRF UART has fixed 8-bit frames, one stop bit, even parity only and
// RTS/CTS flow control tied to the pin selects. These setters exist so code
// written against UARTs that do have the fields builds unchanged; they do
// nothing.

func (p *Port[F]) SetDataBits(bits int)    {}
func (p *Port[F]) SetStopBits(bits int)    {}
func (p *Port[F]) SetParity(parity int)    {}
func (p *Port[F]) SetFlowControl(flow int) {}
