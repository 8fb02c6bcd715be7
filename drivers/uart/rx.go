package uart

import "mcuhal/errcode"

// Reception is polled: the UART holds at most the byte signalled by
// EVENTS_RXDRDY plus its small FIFO, and nothing here buffers in software.

// StartRX clears a stale RXDRDY and starts the receiver.
func (p *Port[F]) StartRX() {
	p.reg(p.c.EventsRXDRDY).Store(0)
	p.reg(p.c.TasksStartRX).Store(1)
}

func (p *Port[F]) StopRX() { p.reg(p.c.TasksStopRX).Store(1) }

// Buffered reports 1 when a received byte is waiting, else 0.
func (p *Port[F]) Buffered() int {
	if p.reg(p.c.EventsRXDRDY).Load() != 0 {
		return 1
	}
	return 0
}

// ReadByte returns the waiting byte, or errcode.Empty. The event is cleared
// before RXD is read so the next byte raises it again.
func (p *Port[F]) ReadByte() (byte, error) {
	ev := p.reg(p.c.EventsRXDRDY)
	if ev.Load() == 0 {
		return 0, errcode.Empty
	}
	ev.Store(0)
	return byte(p.reg(p.c.RXD).Load()), nil
}

// Read copies waiting bytes into buf without blocking.
func (p *Port[F]) Read(buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		b, err := p.ReadByte()
		if err != nil {
			break
		}
		buf[n] = b
		n++
	}
	return n, nil
}

// Errors returns and clears ERRORSRC (overrun, parity, framing, break).
func (p *Port[F]) Errors() uint32 {
	src := p.reg(p.c.ErrorSrc)
	v := src.Load()
	if v != 0 {
		src.Store(v) // write-one-to-clear
		p.reg(p.c.EventsError).Store(0)
	}
	return v
}
