package uart

import (
	"context"

	"mcuhal/chip/nrf"
	"mcuhal/errcode"
)

// Every transmission runs the same sequence:
//
//	start:   clear EVENTS_TXDRDY, then TASKS_STARTTX
//	per byte: TXD = b, spin until EVENTS_TXDRDY, clear it
//	stop:    TASKS_STOPTX
//
// Clearing before the start trigger keeps a stale event from satisfying the
// first wait.

func (p *Port[F]) startTX() {
	p.reg(p.c.EventsTXDRDY).Store(0)
	p.reg(p.c.TasksStartTX).Store(1)
}

func (p *Port[F]) stopTX() { p.reg(p.c.TasksStopTX).Store(1) }

// awaitTXReady spins on EVENTS_TXDRDY. A nil done (context.Background)
// waits forever without touching the channel.
func (p *Port[F]) awaitTXReady(done <-chan struct{}) bool {
	ev := p.reg(p.c.EventsTXDRDY)
	for ev.Load() == 0 {
		if done != nil {
			select {
			case <-done:
				return false
			default:
			}
		}
	}
	ev.Store(0)
	return true
}

// transmit sends s (or its prefix before the first zero byte when cstr is
// set) and returns the number of bytes whose ready event was seen.
func transmit[F nrf.Family, S ~string | ~[]byte](p *Port[F], ctx context.Context, s S, cstr bool) (int, error) {
	done := ctx.Done()
	txd := p.reg(p.c.TXD)

	p.startTX()
	n := 0
	for ; n < len(s); n++ {
		b := s[n]
		if cstr && b == 0 {
			break
		}
		txd.Store(uint32(b))
		if !p.awaitTXReady(done) {
			p.stopTX()
			return n, errcode.FromContext("uart.send", ctx.Err())
		}
	}
	p.stopTX()
	return n, nil
}

// Send transmits one byte and blocks until the UART reports it sent.
func (p *Port[F]) Send(b byte) {
	buf := [1]byte{b}
	transmit(p, context.Background(), buf[:], false)
}

// SendBuffer transmits exactly len(buf) bytes in order. An empty buffer still
// starts and stops the transmitter.
func (p *Port[F]) SendBuffer(buf []byte) { transmit(p, context.Background(), buf, false) }

// SendString transmits s up to, not including, its first zero byte.
func (p *Port[F]) SendString(s string) { transmit(p, context.Background(), s, true) }

// SendBufferContext is SendBuffer with a bound on each wait. When ctx ends
// the transmitter is stopped and an errcode.Timeout error wrapping ctx.Err()
// is returned with the count of bytes already sent.
func (p *Port[F]) SendBufferContext(ctx context.Context, buf []byte) (int, error) {
	return transmit(p, ctx, buf, false)
}

// SendStringContext is SendString bounded by ctx, as SendBufferContext.
func (p *Port[F]) SendStringContext(ctx context.Context, s string) (int, error) {
	return transmit(p, ctx, s, true)
}

// Write implements io.Writer with SendBuffer. It never fails.
func (p *Port[F]) Write(buf []byte) (int, error) {
	p.SendBuffer(buf)
	return len(buf), nil
}

// WriteString implements io.StringWriter. Unlike SendString it sends zero
// bytes too.
func (p *Port[F]) WriteString(s string) (int, error) {
	return transmit(p, context.Background(), s, false)
}

func (p *Port[F]) WriteByte(b byte) error {
	p.Send(b)
	return nil
}
