package board

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mcuhal/chip/nrf"
	"mcuhal/drivers/uart"
	"mcuhal/errcode"
	"mcuhal/family"
)

func TestCompiledInBoardsValidate(t *testing.T) {
	for _, n := range Names() {
		p, err := Lookup(n)
		if err != nil {
			t.Fatalf("%s: %v", n, err)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", n, err)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("nope")
	if !errors.Is(err, errcode.UnknownBoard) {
		t.Fatalf("got %v", err)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	p, _ := Lookup("microbit")
	p.UART[0].TX = 1
	q, _ := Lookup("microbit")
	if q.UART[0].TX != 24 {
		t.Fatal("compiled-in plan was modified through a lookup")
	}
}

func TestMicrobitConfig(t *testing.T) {
	p, _ := Lookup("microbit")
	if d, _ := p.Family(); d.ID != family.NRF51 {
		t.Fatalf("family %v", d)
	}
	u, _ := p.UARTByID("uart0")
	cfg, err := UARTConfig[nrf.NRF51](u)
	if err != nil {
		t.Fatal(err)
	}
	want := uart.Config{TX: 24, RX: 25, RTS: uart.PinNone, CTS: uart.PinNone, Baud: uart.Baud115200}
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestUARTConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		u    UARTPlan
		code errcode.Code
	}{
		{"pin out of range", UARTPlan{ID: "uart0", TX: 32, RX: 1, RTS: -1, CTS: -1}, errcode.InvalidPin},
		{"odd baud", UARTPlan{ID: "uart0", TX: 1, RX: 2, RTS: -1, CTS: -1, Baud: 12345}, errcode.InvalidBaud},
		{"nrf52 only baud", UARTPlan{ID: "uart0", TX: 1, RX: 2, RTS: -1, CTS: -1, Baud: 31250}, errcode.InvalidBaud},
	}
	for _, tt := range tests {
		_, err := UARTConfig[nrf.NRF51](tt.u)
		if errcode.Of(err) != tt.code {
			t.Errorf("%s: got %v, want %s", tt.name, err, tt.code)
		}
	}
	if _, err := UARTConfig[nrf.NRF52](UARTPlan{ID: "uart0", TX: 1, RX: 2, RTS: -1, CTS: -1, Baud: 31250}); err != nil {
		t.Errorf("nRF52 31250: %v", err)
	}
}

func TestDefaultBaud(t *testing.T) {
	cfg, err := UARTConfig[nrf.NRF52](UARTPlan{ID: "uart0", TX: 6, RX: 8, RTS: 5, CTS: -1})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Baud != uart.Baud115200 || cfg.RTS != 5 || cfg.CTS != uart.PinNone {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	doc := `
name: custom
chip: nrf52840
uart:
  - id: uart0
    tx: 6
    rx: 8
    baud: 1000000
    parity: true
`
	p, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	u := p.UART[0]
	if u.TX != 6 || u.RX != 8 || u.RTS != NotWired || u.CTS != NotWired || !u.Parity {
		t.Fatalf("uart = %+v", u)
	}
	cfg, err := UARTConfig[nrf.NRF52](u)
	if err != nil || cfg.Baud != uart.Baud1M {
		t.Fatalf("cfg = %+v, err = %v", cfg, err)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, doc string
		code      errcode.Code
	}{
		{"unknown field", "name: x\nchip: nrf51822\nspeed: 3\n", errcode.InvalidPlan},
		{"unknown chip", "name: x\nchip: atmega328\n", errcode.UnknownChip},
		{"no name", "chip: nrf51822\n", errcode.InvalidPlan},
		{"duplicate uart", "name: x\nchip: nrf51822\nuart: [{id: uart0}, {id: uart0}]\n", errcode.InvalidPlan},
		{"empty", "", errcode.InvalidPlan},
	}
	for _, tt := range tests {
		_, err := Load(strings.NewReader(tt.doc))
		if errcode.Of(err) != tt.code {
			t.Errorf("%s: got %v, want %s", tt.name, err, tt.code)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.yaml")
	if err := os.WriteFile(path, []byte("name: f4\nchip: stm32f407vgt6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if d, _ := p.Family(); d.ID != family.STM32F4 {
		t.Fatalf("family %v", d)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestPlanUARTConfigMissingUART(t *testing.T) {
	p, _ := Lookup("stm32f4disco")
	p.Chip = "nrf52832"
	cfg, err := PlanUARTConfig[nrf.NRF52](p, "uart0")
	if !errors.Is(err, errcode.InvalidPlan) {
		t.Fatalf("got %+v, %v", cfg, err)
	}
	if cfg != (uart.Config{}) {
		t.Fatalf("config on error: %+v", cfg)
	}

	p, _ = Lookup("pca10040")
	cfg, err = PlanUARTConfig[nrf.NRF52](p, "uart0")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TX != 6 || cfg.RX != 8 || cfg.RTS != 5 || cfg.CTS != 7 {
		t.Fatalf("cfg = %+v", cfg)
	}
}
