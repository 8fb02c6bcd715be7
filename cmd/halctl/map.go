package main

import (
	"io"

	"github.com/spf13/cobra"

	"mcuhal/chip/nrf"
	"mcuhal/chip/stm32"
	"mcuhal/errcode"
	"mcuhal/family"
	"mcuhal/mmio"
	"mcuhal/x/conv"
	"mcuhal/x/fmtx"
)

var mapCmd = &cobra.Command{
	Use:   "map <family|tag|part>",
	Short: "Print a family's memory map and register catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := lookupFamily(args[0])
		if err != nil {
			return err
		}
		tw := table(cmd.OutOrStdout())
		fmtx.Fprintf(tw, "%s (%s)\n", d.Name, d.Core)
		switch d.Vendor {
		case family.VendorST:
			f, ok := stm32Family(d.ID)
			if !ok {
				return &errcode.E{C: errcode.UnknownFamily, Op: "halctl.map", Msg: d.Name}
			}
			printSTM32(tw, f)
		case family.VendorNordic:
			f, ok := nrfFamily(d.ID)
			if !ok {
				return &errcode.E{C: errcode.UnknownFamily, Op: "halctl.map", Msg: d.Name}
			}
			printNRF(tw, f)
		}
		return tw.Flush()
	},
}

func stm32Family(id family.ID) (stm32.Family, bool) {
	for _, f := range stm32.Families() {
		if f.Descriptor().ID == id {
			return f, true
		}
	}
	return nil, false
}

func nrfFamily(id family.ID) (nrf.Family, bool) {
	for _, f := range nrf.Families() {
		if f.Descriptor().ID == id {
			return f, true
		}
	}
	return nil, false
}

func hex32(v uint32) string {
	var buf [8]byte
	return "0x" + string(conv.U32Hex(buf[:], v))
}

func addr(w io.Writer, name string, a uintptr) {
	if a == 0 {
		fmtx.Fprintf(w, "  %s\t-\n", name)
		return
	}
	fmtx.Fprintf(w, "  %s\t%s\n", name, hex32(uint32(a)))
}

type namedField struct {
	name string
	f    mmio.RegField
}

func pwrFields(c stm32.PWRCatalog) []namedField {
	return []namedField{
		{"LPDS", c.LPDS}, {"PDDS", c.PDDS}, {"CWUF", c.CWUF}, {"CSBF", c.CSBF},
		{"PVDE", c.PVDE}, {"PLS", c.PLS}, {"DBP", c.DBP}, {"FPDS", c.FPDS},
		{"ODEN", c.ODEN}, {"VOS", c.VOS}, {"WUF", c.WUF}, {"SBF", c.SBF},
		{"PVDO", c.PVDO}, {"VOSRDY", c.VOSReady}, {"VOSF", c.VOSBusy},
		{"BRE", c.BRE}, {"BRR", c.BRR},
	}
}

func printSTM32(w io.Writer, f stm32.Family) {
	m := f.MemoryMap()
	fmtx.Fprintf(w, "memory map\n")
	addr(w, "RCC", m.RCC)
	addr(w, "PWR", m.PWR)
	addr(w, "RTC", m.RTC)
	addr(w, "DAC", m.DAC)
	addr(w, "ETH", m.ETH)

	c := f.PWR()
	fmtx.Fprintf(w, "PWR fields\tOFFSET\tMASK\n")
	for _, nf := range pwrFields(c) {
		if !nf.f.Present() {
			continue
		}
		fmtx.Fprintf(w, "  %s\t+0x%02X\t%s\n", nf.name, uint32(nf.f.Off), hex32(nf.f.Bits()))
	}
	if c.VOSScales > 0 {
		fmtx.Fprintf(w, "  voltage scales\t%d\tcodes %v\n", c.VOSScales, c.VOSCodes[:c.VOSScales])
	}
}

func uartRegs(c nrf.UARTCatalog) []struct {
	name string
	off  uintptr
} {
	return []struct {
		name string
		off  uintptr
	}{
		{"TASKS_STARTRX", c.TasksStartRX}, {"TASKS_STOPRX", c.TasksStopRX},
		{"TASKS_STARTTX", c.TasksStartTX}, {"TASKS_STOPTX", c.TasksStopTX},
		{"EVENTS_RXDRDY", c.EventsRXDRDY}, {"EVENTS_TXDRDY", c.EventsTXDRDY},
		{"EVENTS_ERROR", c.EventsError}, {"ERRORSRC", c.ErrorSrc},
		{"ENABLE", c.Enable}, {"PSELRTS", c.PselRTS}, {"PSELTXD", c.PselTXD},
		{"PSELCTS", c.PselCTS}, {"PSELRXD", c.PselRXD}, {"RXD", c.RXD},
		{"TXD", c.TXD}, {"BAUDRATE", c.Baudrate}, {"CONFIG", c.Config},
	}
}

func printNRF(w io.Writer, f nrf.Family) {
	m := f.MemoryMap()
	fmtx.Fprintf(w, "memory map\n")
	addr(w, "CLOCK", m.Clock)
	addr(w, "POWER", m.Power)
	addr(w, "UART0", m.UART0)
	addr(w, "GPIO", m.GPIO)

	c := f.UART()
	fmtx.Fprintf(w, "UART0 registers\tOFFSET\n")
	for _, r := range uartRegs(c) {
		fmtx.Fprintf(w, "  %s\t+0x%03X\n", r.name, uint32(r.off))
	}
	fmtx.Fprintf(w, "  pins\t0..%d\n", c.MaxPin)
	fmtx.Fprintf(w, "  extended bauds\t%t\n", c.ExtendedBauds)
}
