// Package board describes how a board wires its chip: which part it carries
// and which pins and rates each UART uses. Plans are compiled in for known
// boards and can be loaded from YAML by host tools.
package board

import (
	"strconv"

	"mcuhal/chip/nrf"
	"mcuhal/drivers/uart"
	"mcuhal/errcode"
	"mcuhal/family"
)

// Plan specifies the wiring chosen for one board.
type Plan struct {
	Name string     `yaml:"name"`
	Chip string     `yaml:"chip"` // part number, e.g. "nrf52832"
	UART []UARTPlan `yaml:"uart"`
}

type UARTPlan struct {
	ID     string `yaml:"id"` // e.g. "uart0"
	TX     int    `yaml:"tx"` // GPIO number; negative when not wired
	RX     int    `yaml:"rx"`
	RTS    int    `yaml:"rts"`
	CTS    int    `yaml:"cts"`
	Baud   uint32 `yaml:"baud"` // 0 means DefaultBaud
	Parity bool   `yaml:"parity"`
}

const DefaultBaud = 115_200

// NotWired marks an unconnected pin in a plan.
const NotWired = -1

// Family resolves the plan's chip.
func (p Plan) Family() (family.Descriptor, error) { return family.ForChip(p.Chip) }

// UARTByID returns the UART plan named id.
func (p Plan) UARTByID(id string) (UARTPlan, bool) {
	for _, u := range p.UART {
		if u.ID == id {
			return u, true
		}
	}
	return UARTPlan{}, false
}

// Validate checks that the plan names a known chip and that its UART IDs are
// present and unique.
func (p Plan) Validate() error {
	if p.Name == "" {
		return &errcode.E{C: errcode.InvalidPlan, Op: "board.validate", Msg: "missing name"}
	}
	if _, err := p.Family(); err != nil {
		return err
	}
	seen := map[string]bool{}
	for i, u := range p.UART {
		if u.ID == "" {
			return &errcode.E{C: errcode.InvalidPlan, Op: "board.validate", Msg: p.Name + ": uart[" + strconv.Itoa(i) + "] has no id"}
		}
		if seen[u.ID] {
			return &errcode.E{C: errcode.InvalidPlan, Op: "board.validate", Msg: p.Name + ": duplicate " + u.ID}
		}
		seen[u.ID] = true
	}
	return nil
}

// UARTConfig turns u into a driver configuration for family F. Unwired pins
// become uart.PinNone; wired pins beyond the family's range are
// errcode.InvalidPin.
func UARTConfig[F nrf.Family](u UARTPlan) (uart.Config, error) {
	var f F
	maxPin := int(f.UART().MaxPin)
	pin := func(n int) (uart.Pin, error) {
		switch {
		case n < 0:
			return uart.PinNone, nil
		case n > maxPin:
			return 0, &errcode.E{C: errcode.InvalidPin, Op: "board.uart", Msg: u.ID + ": pin " + strconv.Itoa(n)}
		}
		return uart.Pin(n), nil
	}

	var cfg uart.Config
	var err error
	if cfg.TX, err = pin(u.TX); err != nil {
		return uart.Config{}, err
	}
	if cfg.RX, err = pin(u.RX); err != nil {
		return uart.Config{}, err
	}
	if cfg.RTS, err = pin(u.RTS); err != nil {
		return uart.Config{}, err
	}
	if cfg.CTS, err = pin(u.CTS); err != nil {
		return uart.Config{}, err
	}
	rate := u.Baud
	if rate == 0 {
		rate = DefaultBaud
	}
	if cfg.Baud, err = uart.BaudFor[F](rate); err != nil {
		return uart.Config{}, err
	}
	cfg.Parity = u.Parity
	return cfg, nil
}

// PlanUARTConfig is UARTConfig for the UART named id in p. A plan without that
// UART is errcode.InvalidPlan rather than a config with every pin at 0.
func PlanUARTConfig[F nrf.Family](p Plan, id string) (uart.Config, error) {
	u, ok := p.UARTByID(id)
	if !ok {
		return uart.Config{}, &errcode.E{C: errcode.InvalidPlan, Op: "board.uart", Msg: p.Name + " has no " + id}
	}
	return UARTConfig[F](u)
}
