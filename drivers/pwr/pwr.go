// Package pwr drives the STM32 power controller: backup-domain write
// protection, the programmable voltage detector, low-power mode selection,
// voltage scaling, the backup regulator and F7 over-drive.
//
// Fields a family lacks are reported as errcode.Unsupported rather than
// written blindly.
package pwr

import (
	"context"

	"mcuhal/chip/stm32"
	"mcuhal/errcode"
	"mcuhal/mmio"
)

type Controller[F stm32.Family] struct {
	w mmio.Window
	c stm32.PWRCatalog
}

func New[F stm32.Family](bus mmio.Bus) *Controller[F] {
	var f F
	return &Controller[F]{w: mmio.NewWindow(bus, f.MemoryMap().PWR), c: f.PWR()}
}

// Scale is a voltage scaling range, 1 being the highest performance.
type Scale uint8

const (
	Scale1 Scale = 1
	Scale2 Scale = 2
	Scale3 Scale = 3
)

func unsupported(op string) error {
	return &errcode.E{C: errcode.Unsupported, Op: op}
}

// DisableBackupDomainWriteProtection allows writes to the RTC and backup
// registers.
func (c *Controller[F]) DisableBackupDomainWriteProtection() { c.w.Write(c.c.DBP, 1) }

func (c *Controller[F]) EnableBackupDomainWriteProtection() { c.w.Write(c.c.DBP, 0) }

// EnableVoltageDetector sets the PVD threshold code and turns the detector on.
func (c *Controller[F]) EnableVoltageDetector(level uint32) error {
	if !c.c.PVDE.Present() || !c.c.PLS.Present() {
		return unsupported("pwr.pvd")
	}
	c.w.Write(c.c.PLS, level)
	c.w.Write(c.c.PVDE, 1)
	return nil
}

func (c *Controller[F]) DisableVoltageDetector() {
	if c.c.PVDE.Present() {
		c.w.Write(c.c.PVDE, 0)
	}
}

// VoltageBelowThreshold reports the PVD output.
func (c *Controller[F]) VoltageBelowThreshold() bool {
	return c.c.PVDO.Present() && c.w.IsSet(c.c.PVDO)
}

// SetStandbyMode makes deep sleep enter standby rather than stop.
func (c *Controller[F]) SetStandbyMode() error { return c.setBit(c.c.PDDS, 1, "pwr.standby") }

func (c *Controller[F]) SetStopMode() error { return c.setBit(c.c.PDDS, 0, "pwr.stop") }

// RegulatorLowPowerInStop selects the low-power regulator during stop mode.
func (c *Controller[F]) RegulatorLowPowerInStop() error { return c.setBit(c.c.LPDS, 1, "pwr.lpds") }

func (c *Controller[F]) RegulatorOnInStop() error { return c.setBit(c.c.LPDS, 0, "pwr.lpds") }

func (c *Controller[F]) setBit(f mmio.RegField, v uint32, op string) error {
	if !f.Present() {
		return unsupported(op)
	}
	c.w.Write(f, v)
	return nil
}

// ClearWakeupFlag clears every wakeup flag of the family.
func (c *Controller[F]) ClearWakeupFlag() { c.w.Write(c.c.CWUF, c.c.CWUF.Mask) }

func (c *Controller[F]) ClearStandbyFlag() { c.w.Write(c.c.CSBF, c.c.CSBF.Mask) }

func (c *Controller[F]) WakeupFlag() bool { return c.w.IsSet(c.c.WUF) }

func (c *Controller[F]) StandbyFlag() bool { return c.w.IsSet(c.c.SBF) }

// SetVoltageScale programs VOS and spins until the regulator reports the new
// range, on families that report it.
func (c *Controller[F]) SetVoltageScale(s Scale) error {
	return c.SetVoltageScaleContext(context.Background(), s)
}

// SetVoltageScaleContext is SetVoltageScale with the wait bounded by ctx.
func (c *Controller[F]) SetVoltageScaleContext(ctx context.Context, s Scale) error {
	if s < Scale1 || int(s) > c.c.VOSScales {
		return unsupported("pwr.vos")
	}
	c.w.Write(c.c.VOS, c.c.VOSCodes[s-1])
	switch {
	case c.c.VOSReady.Present():
		return c.wait(ctx, c.c.VOSReady, true, "pwr.vos")
	case c.c.VOSBusy.Present():
		return c.wait(ctx, c.c.VOSBusy, false, "pwr.vos")
	}
	return nil
}

// VoltageScale returns the programmed range, or 0 when the family has none or
// the field holds an unknown code.
func (c *Controller[F]) VoltageScale() Scale {
	if c.c.VOSScales == 0 {
		return 0
	}
	v := c.w.Read(c.c.VOS)
	for i := 0; i < c.c.VOSScales; i++ {
		if c.c.VOSCodes[i] == v {
			return Scale(i + 1)
		}
	}
	return 0
}

// EnableBackupRegulator turns the backup SRAM regulator on and waits for it.
func (c *Controller[F]) EnableBackupRegulator(ctx context.Context) error {
	if !c.c.BRE.Present() {
		return unsupported("pwr.bre")
	}
	c.w.Write(c.c.BRE, 1)
	return c.wait(ctx, c.c.BRR, true, "pwr.bre")
}

func (c *Controller[F]) DisableBackupRegulator() {
	if c.c.BRE.Present() {
		c.w.Write(c.c.BRE, 0)
	}
}

func (c *Controller[F]) EnableOverdrive() error { return c.setBit(c.c.ODEN, 1, "pwr.overdrive") }

func (c *Controller[F]) DisableOverdrive() error { return c.setBit(c.c.ODEN, 0, "pwr.overdrive") }

// FlashPowerDownInStop powers the flash down during stop mode (F2/F4/F7).
func (c *Controller[F]) FlashPowerDownInStop(on bool) error {
	var v uint32
	if on {
		v = 1
	}
	return c.setBit(c.c.FPDS, v, "pwr.fpds")
}

func (c *Controller[F]) wait(ctx context.Context, f mmio.RegField, want bool, op string) error {
	done := ctx.Done()
	for c.w.IsSet(f) != want {
		if done != nil {
			select {
			case <-done:
				return errcode.FromContext(op, ctx.Err())
			default:
			}
		}
	}
	return nil
}
