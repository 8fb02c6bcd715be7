package board

import (
	"sort"

	"mcuhal/errcode"
)

var boards = map[string]Plan{
	"microbit": {
		Name: "microbit",
		Chip: "nrf51822",
		UART: []UARTPlan{
			// USB interface chip bridge
			{ID: "uart0", TX: 24, RX: 25, RTS: NotWired, CTS: NotWired, Baud: 115_200},
		},
	},
	"pca10028": {
		Name: "pca10028",
		Chip: "nrf51422",
		UART: []UARTPlan{
			{ID: "uart0", TX: 9, RX: 11, RTS: 8, CTS: 10, Baud: 115_200},
		},
	},
	"pca10040": {
		Name: "pca10040",
		Chip: "nrf52832",
		UART: []UARTPlan{
			{ID: "uart0", TX: 6, RX: 8, RTS: 5, CTS: 7, Baud: 115_200},
		},
	},
	"stm32f4disco": {
		Name: "stm32f4disco",
		Chip: "stm32f407vg",
	},
}

// Lookup returns the compiled-in plan for name.
func Lookup(name string) (Plan, error) {
	p, ok := boards[name]
	if !ok {
		return Plan{}, &errcode.E{C: errcode.UnknownBoard, Op: "board.lookup", Msg: name}
	}
	p.UART = append([]UARTPlan(nil), p.UART...)
	return p, nil
}

// Names lists the compiled-in boards, sorted.
func Names() []string {
	out := make([]string, 0, len(boards))
	for n := range boards {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
