package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mcuhal/board"
	"mcuhal/chip/nrf"
	"mcuhal/chip/stm32"
	"mcuhal/drivers/pwr"
	"mcuhal/drivers/uart"
	"mcuhal/errcode"
	"mcuhal/family"
	"mcuhal/mmio/sim"
	"mcuhal/x/conv"
	"mcuhal/x/fmtx"
)

// Bounds every simulated busy-wait; a missing hook must not hang the tool.
const simTimeout = time.Second

var simOpts = struct {
	board  string
	plan   string
	uart   string
	text   string
	hex    string
	loads  bool
	scale  int
	backup bool
}{}

var simUARTCmd = &cobra.Command{
	Use:   "sim-uart",
	Short: "Configure a board's UART on simulated registers and send text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPlan(simOpts.board, simOpts.plan)
		if err != nil {
			return err
		}
		m := sim.New()
		m.TraceLoads(simOpts.loads)
		names, err := simulateUART(m, p, simOpts.uart, simOpts.text)
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), m, names)
	},
}

var simPWRCmd = &cobra.Command{
	Use:   "sim-pwr <family|tag|part>",
	Short: "Run the STM32 power controller on simulated registers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := lookupFamily(args[0])
		if err != nil {
			return err
		}
		m := sim.New()
		m.TraceLoads(simOpts.loads)
		names, err := simulatePWR(m, d, pwr.Scale(simOpts.scale), simOpts.backup)
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), m, names)
	},
}

func init() {
	f := simUARTCmd.Flags()
	f.StringVar(&simOpts.board, "board", "pca10040", "compiled-in board ("+joinNames()+")")
	f.StringVar(&simOpts.plan, "plan", "", "YAML board plan; overrides --board")
	f.StringVar(&simOpts.uart, "uart", "uart0", "UART id in the plan")
	f.StringVar(&simOpts.text, "text", "hello\n", "text to send")
	f.StringVar(&simOpts.hex, "hex", "", "write the final register image as Intel HEX")
	f.BoolVar(&simOpts.loads, "loads", false, "trace loads too")

	f = simPWRCmd.Flags()
	f.IntVar(&simOpts.scale, "scale", 1, "voltage scale to select (0 skips)")
	f.BoolVar(&simOpts.backup, "backup", false, "enable the backup regulator")
	f.StringVar(&simOpts.hex, "hex", "", "write the final register image as Intel HEX")
	f.BoolVar(&simOpts.loads, "loads", false, "trace loads too")
}

func joinNames() string {
	s := ""
	for i, n := range board.Names() {
		if i > 0 {
			s += ", "
		}
		s += n
	}
	return s
}

func loadPlan(name, path string) (board.Plan, error) {
	if path != "" {
		return board.LoadFile(path)
	}
	return board.Lookup(name)
}

// simulateUART runs the plan's UART on m: configure, enable, send text. It
// returns register names by address for the trace.
func simulateUART(m *sim.Memory, p board.Plan, id, text string) (map[uintptr]string, error) {
	d, err := p.Family()
	if err != nil {
		return nil, err
	}
	u, ok := p.UARTByID(id)
	if !ok {
		return nil, &errcode.E{C: errcode.InvalidPlan, Op: "halctl.sim-uart", Msg: p.Name + " has no " + id}
	}
	switch d.ID {
	case family.NRF51:
		return runUART[nrf.NRF51](m, u, text)
	case family.NRF52:
		return runUART[nrf.NRF52](m, u, text)
	}
	return nil, &errcode.E{C: errcode.Unsupported, Op: "halctl.sim-uart", Msg: d.Name + " has no UART driver"}
}

func runUART[F nrf.Family](m *sim.Memory, u board.UARTPlan, text string) (map[uintptr]string, error) {
	cfg, err := board.UARTConfig[F](u)
	if err != nil {
		return nil, err
	}
	var f F
	c := f.UART()
	port := uart.New[F](m)
	base := port.Base()
	// The transmitter finishes every byte at once.
	m.OnStore(base+c.TXD, func(m *sim.Memory, v uint32) { m.Poke(base+c.EventsTXDRDY, 1) })

	port.Configure(cfg)
	port.Enable()
	ctx, cancel := context.WithTimeout(context.Background(), simTimeout)
	defer cancel()
	if _, err := port.SendStringContext(ctx, text); err != nil {
		return nil, err
	}

	names := map[uintptr]string{}
	for _, r := range uartRegs(c) {
		names[base+r.off] = "UART0." + r.name
	}
	return names, nil
}

func simulatePWR(m *sim.Memory, d family.Descriptor, s pwr.Scale, backup bool) (map[uintptr]string, error) {
	switch d.ID {
	case family.STM32F0:
		return runPWR[stm32.F0](m, s, backup)
	case family.STM32F1:
		return runPWR[stm32.F1](m, s, backup)
	case family.STM32F2:
		return runPWR[stm32.F2](m, s, backup)
	case family.STM32F3:
		return runPWR[stm32.F3](m, s, backup)
	case family.STM32F4:
		return runPWR[stm32.F4](m, s, backup)
	case family.STM32F7:
		return runPWR[stm32.F7](m, s, backup)
	case family.STM32L0:
		return runPWR[stm32.L0](m, s, backup)
	case family.STM32L1:
		return runPWR[stm32.L1](m, s, backup)
	case family.STM32L4:
		return runPWR[stm32.L4](m, s, backup)
	}
	return nil, &errcode.E{C: errcode.Unsupported, Op: "halctl.sim-pwr", Msg: d.Name + " has no PWR driver"}
}

func runPWR[F stm32.Family](m *sim.Memory, s pwr.Scale, backup bool) (map[uintptr]string, error) {
	var f F
	base := f.MemoryMap().PWR
	c := f.PWR()
	// Ready flags follow their enables; busy flags read as clear.
	if c.VOSReady.Present() {
		ready := c.VOSReady
		m.OnStore(base+c.VOS.Off, func(m *sim.Memory, v uint32) {
			a := base + ready.Off
			m.Poke(a, ready.Put(m.Peek(a), 1))
		})
	}
	if c.BRR.Present() {
		bre, brr := c.BRE, c.BRR
		m.OnStore(base+c.BRE.Off, func(m *sim.Memory, v uint32) {
			a := base + brr.Off
			m.Poke(a, brr.Put(m.Peek(a), bre.Get(v)))
		})
	}

	ctl := pwr.New[F](m)
	ctl.DisableBackupDomainWriteProtection()
	ctx, cancel := context.WithTimeout(context.Background(), simTimeout)
	defer cancel()
	if s != 0 {
		if err := ctl.SetVoltageScaleContext(ctx, s); err != nil {
			return nil, err
		}
	}
	if backup {
		if err := ctl.EnableBackupRegulator(ctx); err != nil {
			return nil, err
		}
	}

	names := map[uintptr]string{}
	for _, nf := range pwrFields(c) {
		if nf.f.Present() {
			var buf [2]byte
			names[base+nf.f.Off] = "PWR+0x" + string(conv.Hex(buf[:], uint64(nf.f.Off), 2))
		}
	}
	return names, nil
}

// report prints the access trace and, with --hex, writes the register image.
func report(w io.Writer, m *sim.Memory, names map[uintptr]string) error {
	var a, v [8]byte
	for _, acc := range m.Trace() {
		fmtx.Fprintf(w, "%s %s = %s  %s\n", acc.Op, conv.U32Hex(a[:], uint32(acc.Addr)), conv.U32Hex(v[:], acc.Value), names[acc.Addr])
	}
	if simOpts.hex == "" {
		return nil
	}
	f, err := os.Create(simOpts.hex)
	if err != nil {
		return err
	}
	if err := m.DumpIntelHex(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
