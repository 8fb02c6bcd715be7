package nrf

import (
	"testing"

	"mcuhal/family"
)

func TestDescriptors(t *testing.T) {
	if (NRF51{}).Descriptor().Tag != "nrf51" || (NRF52{}).Descriptor().Tag != "nrf52" {
		t.Fatal("tags")
	}
	for _, f := range Families() {
		if f.Descriptor().Vendor != family.VendorNordic {
			t.Fatalf("%s: vendor", f.Descriptor())
		}
		if f.MemoryMap().UART0 != 0x4000_2000 {
			t.Fatalf("%s: UART0 base %#x", f.Descriptor(), f.MemoryMap().UART0)
		}
	}
}

func TestUARTCatalogLayout(t *testing.T) {
	c := NRF51{}.UART()
	offs := map[string]uintptr{
		"STARTTX": c.TasksStartTX, "STOPTX": c.TasksStopTX, "TXDRDY": c.EventsTXDRDY,
		"ENABLE": c.Enable, "PSELTXD": c.PselTXD, "TXD": c.TXD, "BAUDRATE": c.Baudrate, "CONFIG": c.Config,
	}
	want := map[string]uintptr{
		"STARTTX": 0x008, "STOPTX": 0x00C, "TXDRDY": 0x11C,
		"ENABLE": 0x500, "PSELTXD": 0x50C, "TXD": 0x51C, "BAUDRATE": 0x524, "CONFIG": 0x56C,
	}
	for k, v := range want {
		if offs[k] != v {
			t.Fatalf("%s at %#x want %#x", k, offs[k], v)
		}
	}
	if c.ConfigHWFC.Bits() != 0x1 || c.ConfigParity.Value(c.ParityIncluded) != 0xE {
		t.Fatal("CONFIG fields")
	}
	if c.ExtendedBauds || !(NRF52{}).UART().ExtendedBauds {
		t.Fatal("extended bauds only on nRF52")
	}
}
