// Package uartio gives one UART port a single owning goroutine. Writers from
// any goroutine queue their buffers; the owner transmits them one at a time,
// polls the receiver between transmissions and publishes what it sees as
// events.
package uartio

import (
	"context"
	"time"

	"tinygo.org/x/drivers"

	"mcuhal/errcode"
	"mcuhal/x/mathx"
)

// Port is a drivers.UART that can also bound a transmission by ctx. The
// worker polls it through Buffered and Read and sends with SendBufferContext.
type Port interface {
	drivers.UART
	SendBufferContext(ctx context.Context, p []byte) (int, error)
}

type Event struct {
	DevID string
	Dir   string // "rx" | "tx"
	Data  []byte
	TS    time.Time
}

type Config struct {
	DevID     string
	Mode      string        // "bytes" | "lines"
	MaxFrame  int           // clamp 8..256
	IdleFlush time.Duration // clamp 0..2s (lines mode)
	Poll      time.Duration // clamp 1ms..100ms; 0 means 5ms
	TXEcho    bool
}

type txReq struct {
	ctx  context.Context
	p    []byte
	done chan txResult
}

type txResult struct {
	n   int
	err error
}

type Worker struct {
	port Port
	cfg  Config
	reqQ chan txReq
	outQ chan Event
	quit chan struct{}
}

func New(port Port, cfg Config, outBuf int) *Worker {
	if outBuf <= 0 {
		outBuf = 64
	}
	cfg.MaxFrame = mathx.Clamp(cfg.MaxFrame, 8, 256)
	cfg.IdleFlush = mathx.Clamp(cfg.IdleFlush, 0, 2*time.Second)
	if cfg.Poll == 0 {
		cfg.Poll = 5 * time.Millisecond
	}
	cfg.Poll = mathx.Clamp(cfg.Poll, time.Millisecond, 100*time.Millisecond)
	return &Worker{
		port: port,
		cfg:  cfg,
		reqQ: make(chan txReq),
		outQ: make(chan Event, outBuf),
		quit: make(chan struct{}),
	}
}

func (w *Worker) Events() <-chan Event { return w.outQ }

// Write queues p for transmission and waits until the owner has sent it.
// ctx bounds both the wait for the owner and the transmission itself.
func (w *Worker) Write(ctx context.Context, p []byte) (int, error) {
	r := txReq{ctx: ctx, p: p, done: make(chan txResult, 1)}
	select {
	case w.reqQ <- r:
	case <-ctx.Done():
		return 0, errcode.FromContext("uartio.write", ctx.Err())
	case <-w.quit:
		return 0, &errcode.E{C: errcode.Closed, Op: "uartio.write", Msg: w.cfg.DevID}
	}
	res := <-r.done
	return res.n, res.err
}

// Run owns the port until ctx ends. It must be called once.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.quit)

	buf := make([]byte, w.cfg.MaxFrame)
	var line []byte
	var lastRX time.Time

	flush := func(now time.Time) {
		if len(line) == 0 {
			return
		}
		w.emit("rx", line, now)
		line = line[:0]
	}

	tick := time.NewTicker(w.cfg.Poll)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			flush(time.Now())
			return ctx.Err()

		case r := <-w.reqQ:
			n, err := w.port.SendBufferContext(r.ctx, r.p)
			r.done <- txResult{n, err}
			if w.cfg.TXEcho && n > 0 {
				w.EmitTX(r.p[:n])
			}

		case now := <-tick.C:
			for w.port.Buffered() > 0 {
				n, _ := w.port.Read(buf)
				if n <= 0 {
					break
				}
				lastRX = now
				if w.cfg.Mode != "lines" {
					w.emit("rx", buf[:n], now)
					continue
				}
				// Split on LF, drop CR, truncate over-long lines.
				for _, b := range buf[:n] {
					switch b {
					case '\n':
						flush(now)
					case '\r':
					default:
						if len(line) < w.cfg.MaxFrame {
							line = append(line, b)
						}
					}
				}
			}
			if w.cfg.Mode == "lines" && w.cfg.IdleFlush > 0 && now.Sub(lastRX) >= w.cfg.IdleFlush {
				flush(now)
			}
		}
	}
}

// EmitTX publishes data as tx events of at most MaxFrame bytes each.
func (w *Worker) EmitTX(data []byte) {
	now := time.Now()
	for len(data) > 0 {
		n := mathx.Min(len(data), w.cfg.MaxFrame)
		w.emit("tx", data[:n], now)
		data = data[n:]
	}
}

func (w *Worker) emit(dir string, data []byte, ts time.Time) {
	p := append([]byte(nil), data...)
	select {
	case w.outQ <- Event{DevID: w.cfg.DevID, Dir: dir, Data: p, TS: ts}:
	default:
		// drop if consumer is slow
	}
}
