package uart

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mcuhal/chip/nrf"
	"mcuhal/errcode"
	"mcuhal/mmio/sim"
)

const base = 0x4000_2000

var cat = nrf.NRF51{}.UART()

func addr(off uintptr) uintptr { return base + off }

// newSimPort returns a port on simulated memory whose transmitter reports
// every TXD write as sent.
func newSimPort() (*sim.Memory, *Port[nrf.NRF51]) {
	m := sim.New()
	m.OnStore(addr(cat.TXD), func(m *sim.Memory, v uint32) {
		m.Poke(addr(cat.EventsTXDRDY), 1)
	})
	return m, New[nrf.NRF51](m)
}

func equal(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEnableDisableIdempotent(t *testing.T) {
	m, p := newSimPort()
	en := addr(cat.Enable)

	p.Enable()
	p.Disable()
	if m.Peek(en) != 0 || p.Enabled() {
		t.Fatalf("enable+disable: ENABLE=%d", m.Peek(en))
	}
	p.Disable()
	p.Enable()
	p.Enable()
	if m.Peek(en) != 4 || !p.Enabled() {
		t.Fatalf("disable+enable: ENABLE=%d", m.Peek(en))
	}
}

func TestConfigureDisconnectedFlowControl(t *testing.T) {
	m, p := newSimPort()
	p.Configure(Config{TX: 3, RX: 4, RTS: PinNone, CTS: PinNone, Baud: Baud9600, Parity: false})

	checks := []struct {
		name string
		off  uintptr
		want uint32
	}{
		{"PSELTXD", cat.PselTXD, 3},
		{"PSELRXD", cat.PselRXD, 4},
		{"PSELRTS", cat.PselRTS, 0xFFFF_FFFF},
		{"PSELCTS", cat.PselCTS, 0xFFFF_FFFF},
		{"CONFIG", cat.Config, 0},
		{"BAUDRATE", cat.Baudrate, uint32(Baud9600)},
	}
	for _, c := range checks {
		if got := m.Peek(addr(c.off)); got != c.want {
			t.Errorf("%s = %#x want %#x", c.name, got, c.want)
		}
	}
	// The disconnected selects are written, not skipped.
	if len(m.Stores(addr(cat.PselRTS))) != 1 || len(m.Stores(addr(cat.PselCTS))) != 1 {
		t.Fatal("RTS/CTS selects must be written unconditionally")
	}
}

func TestConfigurePartialFlowControlAndParity(t *testing.T) {
	m, p := newSimPort()
	p.Configure(Config{TX: 3, RX: 4, RTS: 5, CTS: PinNone, Baud: Baud115200, Parity: true})

	cfg := m.Peek(addr(cat.Config))
	if cfg&0x1 == 0 {
		t.Errorf("HWFC must be set when only RTS is wired: CONFIG=%#x", cfg)
	}
	if cfg&0xE != 0xE {
		t.Errorf("parity must be included: CONFIG=%#x", cfg)
	}
	if got := m.Peek(addr(cat.Baudrate)); got != uint32(Baud115200) {
		t.Errorf("BAUDRATE = %#x", got)
	}
	if got := m.Peek(addr(cat.PselRTS)); got != 5 {
		t.Errorf("PSELRTS = %d", got)
	}

	// CTS alone also enables flow control; pins just above MaxPin do not.
	p.Configure(Config{TX: 3, RX: 4, RTS: 32, CTS: 7, Baud: Baud115200})
	if m.Peek(addr(cat.Config)) != 0x1 {
		t.Errorf("CTS only: CONFIG=%#x", m.Peek(addr(cat.Config)))
	}
	p.Configure(Config{TX: 3, RX: 4, RTS: 32, CTS: 200, Baud: Baud115200})
	if m.Peek(addr(cat.Config)) != 0 {
		t.Errorf("both out of range: CONFIG=%#x", m.Peek(addr(cat.Config)))
	}
}

func TestSetPinsTouchesOnlyTXRX(t *testing.T) {
	m, p := newSimPort()
	p.Configure(Config{TX: 1, RX: 2, RTS: 3, CTS: 4, Baud: Baud9600})
	m.ResetTrace()

	p.SetPins(10, 11)

	tr := m.Trace()
	if len(tr) != 2 {
		t.Fatalf("SetPins wrote %d registers: %+v", len(tr), tr)
	}
	if m.Peek(addr(cat.PselRXD)) != 10 || m.Peek(addr(cat.PselTXD)) != 11 {
		t.Fatal("rx/tx swapped or not written")
	}
	if m.Peek(addr(cat.PselRTS)) != 3 || m.Peek(addr(cat.Baudrate)) != uint32(Baud9600) {
		t.Fatal("other configuration changed")
	}
}

func TestSetBaudRateRoundTrip(t *testing.T) {
	for _, f := range []func() []Baud{Bauds[nrf.NRF51], Bauds[nrf.NRF52]} {
		for _, b := range f() {
			m, p := newSimPort()
			p.SetBaudRate(b)
			if p.BaudRate() != b || m.Peek(addr(cat.Baudrate)) != uint32(b) {
				t.Fatalf("baud %v: read back %#x", b, m.Peek(addr(cat.Baudrate)))
			}
			if len(m.Trace()) != 1 {
				t.Fatalf("baud %v: SetBaudRate wrote more than BAUDRATE", b)
			}
		}
	}
}

func TestNoOpSettersTouchNothing(t *testing.T) {
	m, p := newSimPort()
	m.TraceLoads(true)
	p.SetDataBits(7)
	p.SetStopBits(2)
	p.SetParity(2)
	p.SetFlowControl(1)
	if tr := m.Trace(); len(tr) != 0 {
		t.Fatalf("no-op setters accessed the bus: %+v", tr)
	}
}

func TestSendBufferSequence(t *testing.T) {
	m, p := newSimPort()
	p.SendBuffer([]byte{0x41, 0x42, 0x43})

	if got := m.Stores(addr(cat.TasksStartTX)); !equal(got, []uint32{1}) {
		t.Fatalf("STARTTX triggers: %v", got)
	}
	if got := m.Stores(addr(cat.TXD)); !equal(got, []uint32{0x41, 0x42, 0x43}) {
		t.Fatalf("TXD writes: %x", got)
	}
	if got := m.Stores(addr(cat.TasksStopTX)); !equal(got, []uint32{1}) {
		t.Fatalf("STOPTX triggers: %v", got)
	}

	// Order: clear event, start, data..., stop last.
	tr := m.Trace()
	if tr[0].Addr != addr(cat.EventsTXDRDY) || tr[0].Value != 0 {
		t.Fatalf("first access must clear TXDRDY: %+v", tr[0])
	}
	if tr[1].Addr != addr(cat.TasksStartTX) {
		t.Fatalf("second access must be STARTTX: %+v", tr[1])
	}
	if last := tr[len(tr)-1]; last.Addr != addr(cat.TasksStopTX) {
		t.Fatalf("last access must be STOPTX: %+v", last)
	}
}

func TestSendBufferEmptyStillStartsAndStops(t *testing.T) {
	m, p := newSimPort()
	p.SendBuffer(nil)

	if len(m.Stores(addr(cat.TXD))) != 0 {
		t.Fatal("no data writes expected")
	}
	if len(m.Stores(addr(cat.TasksStartTX))) != 1 || len(m.Stores(addr(cat.TasksStopTX))) != 1 {
		t.Fatal("start/stop must still be issued")
	}
}

func TestSendStringStopsAtTerminator(t *testing.T) {
	m, p := newSimPort()
	p.SendString("AB\x00garbage")

	if got := m.Stores(addr(cat.TXD)); !equal(got, []uint32{0x41, 0x42}) {
		t.Fatalf("TXD writes: %x", got)
	}
	if len(m.Stores(addr(cat.TasksStopTX))) != 1 {
		t.Fatal("STOPTX missing")
	}
}

func TestSendSingleByte(t *testing.T) {
	m, p := newSimPort()
	p.Send('x')
	if got := m.Stores(addr(cat.TXD)); !equal(got, []uint32{'x'}) {
		t.Fatalf("TXD writes: %v", got)
	}
	if len(m.Stores(addr(cat.TasksStartTX))) != 1 || len(m.Stores(addr(cat.TasksStopTX))) != 1 {
		t.Fatal("one start and one stop per byte send")
	}
}

func TestWriterAdapters(t *testing.T) {
	m, p := newSimPort()
	fmt.Fprintf(p, "n=%d", 7)
	p.WriteByte('!')
	if n, err := p.WriteString("a\x00b"); n != 3 || err != nil {
		t.Fatalf("WriteString: %d %v", n, err)
	}

	var got []byte
	for _, v := range m.Stores(addr(cat.TXD)) {
		got = append(got, byte(v))
	}
	if string(got) != "n=7!a\x00b" {
		t.Fatalf("sent %q", got)
	}
}

func TestSendBufferContextTimesOutOnStuckTransmitter(t *testing.T) {
	m := sim.New() // nothing ever raises TXDRDY
	p := New[nrf.NRF51](m)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	n, err := p.SendBufferContext(ctx, []byte("hello"))
	if n != 0 {
		t.Fatalf("sent %d bytes on a stuck line", n)
	}
	if !errors.Is(err, errcode.Timeout) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if len(m.Stores(addr(cat.TasksStopTX))) != 1 {
		t.Fatal("transmitter must be stopped after a timeout")
	}
	if got := m.Stores(addr(cat.TXD)); len(got) != 1 {
		t.Fatalf("only the first byte may be written, got %v", got)
	}
}

func TestSendStringContextCompletes(t *testing.T) {
	m, p := newSimPort()
	n, err := p.SendStringContext(context.Background(), "ok\x00no")
	if err != nil || n != 2 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if len(m.Stores(addr(cat.TXD))) != 2 {
		t.Fatal("TXD count")
	}
}

func TestPolledReceive(t *testing.T) {
	m, p := newSimPort()
	p.StartRX()
	if got := m.Stores(addr(cat.TasksStartRX)); !equal(got, []uint32{1}) {
		t.Fatalf("STARTRX: %v", got)
	}

	if p.Buffered() != 0 {
		t.Fatal("nothing received yet")
	}
	if _, err := p.ReadByte(); !errors.Is(err, errcode.Empty) {
		t.Fatalf("expected Empty, got %v", err)
	}

	m.Poke(addr(cat.RXD), 'z')
	m.Poke(addr(cat.EventsRXDRDY), 1)
	if p.Buffered() != 1 {
		t.Fatal("Buffered should see RXDRDY")
	}
	buf := make([]byte, 4)
	n, err := p.Read(buf)
	if n != 1 || err != nil || buf[0] != 'z' {
		t.Fatalf("Read: n=%d err=%v buf=%q", n, err, buf[:n])
	}
	if m.Peek(addr(cat.EventsRXDRDY)) != 0 {
		t.Fatal("RXDRDY not cleared")
	}

	p.StopRX()
	if len(m.Stores(addr(cat.TasksStopRX))) != 1 {
		t.Fatal("STOPRX")
	}
}

func TestErrorsReadAndClear(t *testing.T) {
	m, p := newSimPort()
	if p.Errors() != 0 {
		t.Fatal("no errors expected")
	}
	m.Poke(addr(cat.ErrorSrc), 0x4)
	if got := p.Errors(); got != 0x4 {
		t.Fatalf("Errors = %#x", got)
	}
	if got := m.Stores(addr(cat.ErrorSrc)); !equal(got, []uint32{0x4}) {
		t.Fatalf("ERRORSRC clear write: %v", got)
	}
}

func TestBaudHelpers(t *testing.T) {
	if len(Bauds[nrf.NRF51]()) != 16 || len(Bauds[nrf.NRF52]()) != 18 {
		t.Fatalf("baud sets: %d / %d", len(Bauds[nrf.NRF51]()), len(Bauds[nrf.NRF52]()))
	}
	if b, err := BaudFor[nrf.NRF51](115200); err != nil || b != Baud115200 {
		t.Fatalf("BaudFor 115200: %v %v", b, err)
	}
	if _, err := BaudFor[nrf.NRF51](31250); !errors.Is(err, errcode.InvalidBaud) {
		t.Fatalf("31250 on nRF51: %v", err)
	}
	if b, err := BaudFor[nrf.NRF52](31250); err != nil || b != Baud31250 {
		t.Fatalf("31250 on nRF52: %v %v", b, err)
	}
	if _, err := BaudFor[nrf.NRF52](12345); !errors.Is(err, errcode.InvalidBaud) {
		t.Fatal("odd rate accepted")
	}
	if Baud9600.String() != "9600" || Baud(0x10).String() != "0x10" {
		t.Fatalf("String: %s %s", Baud9600, Baud(0x10))
	}
}

func TestPortIsGenericOverFamily(t *testing.T) {
	m := sim.New()
	p := New[nrf.NRF52](m)
	if p.Base() != 0x4000_2000 {
		t.Fatalf("base %#x", p.Base())
	}
	p.Enable()
	if m.Peek(base+0x500) != 4 {
		t.Fatal("nRF52 enable code")
	}
	if !p.Connected(31) || p.Connected(PinNone) {
		t.Fatal("Connected")
	}
}
