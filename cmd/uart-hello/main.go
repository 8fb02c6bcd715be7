//go:build tinygo && (nrf51 || nrf52)

// uart-hello configures UART0 from the board plan, prints a counter once a
// second and echoes whatever it receives.
package main

import (
	"time"

	"mcuhal/board"
	"mcuhal/target"
	"mcuhal/x/fmtx"
)

func boardName() string {
	if target.Tag == "nrf51" {
		return "microbit"
	}
	return "pca10040"
}

func main() {
	p, err := board.Lookup(boardName())
	if err != nil {
		println("[uart] board:", err.Error())
		return
	}
	cfg, err := board.PlanUARTConfig[target.Family](p, "uart0")
	if err != nil {
		println("[uart] plan:", err.Error())
		return
	}

	port := target.UART0()
	port.Configure(cfg)
	port.Enable()
	port.StartRX()
	fmtx.DefaultOutput = port

	fmtx.Printf("%s on %s, UART0 at %08X, %s baud\r\n", p.Name, target.Selected().Name, uint32(port.Base()), cfg.Baud)

	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	n := 0
	for {
		select {
		case <-tick.C:
			fmtx.Printf("hello %d\r\n", n)
			n++
		default:
			if b, err := port.ReadByte(); err == nil {
				port.WriteByte(b)
			}
			if e := port.Errors(); e != 0 {
				fmtx.Printf("[uart] errorsrc %x\r\n", e)
			}
			time.Sleep(time.Millisecond)
		}
	}
}
