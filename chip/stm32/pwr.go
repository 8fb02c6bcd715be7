package stm32

import "mcuhal/mmio"

// Classic PWR layout: CR at 0x00, CSR at 0x04.
const (
	pwrCR  = 0x00
	pwrCSR = 0x04
)

// L4 layout.
const (
	pwrCR1 = 0x00
	pwrCR2 = 0x04
	pwrSR1 = 0x10
	pwrSR2 = 0x14
	pwrSCR = 0x18
)

func classicPWR() PWRCatalog {
	return PWRCatalog{
		LPDS: mmio.BitAt(pwrCR, 0),
		PDDS: mmio.BitAt(pwrCR, 1),
		CWUF: mmio.BitAt(pwrCR, 2),
		CSBF: mmio.BitAt(pwrCR, 3),
		PVDE: mmio.BitAt(pwrCR, 4),
		PLS:  mmio.FieldAt(pwrCR, 0x7, 5),
		DBP:  mmio.BitAt(pwrCR, 8),
		WUF:  mmio.BitAt(pwrCSR, 0),
		SBF:  mmio.BitAt(pwrCSR, 1),
		PVDO: mmio.BitAt(pwrCSR, 2),
	}
}

func (F0) PWR() PWRCatalog { return classicPWR() }
func (F1) PWR() PWRCatalog { return classicPWR() }
func (F3) PWR() PWRCatalog { return classicPWR() }

func (F2) PWR() PWRCatalog {
	c := classicPWR()
	c.FPDS = mmio.BitAt(pwrCR, 9)
	c.BRE = mmio.BitAt(pwrCSR, 9)
	c.BRR = mmio.BitAt(pwrCSR, 3)
	return c
}

func (F4) PWR() PWRCatalog {
	c := classicPWR()
	c.FPDS = mmio.BitAt(pwrCR, 9)
	c.BRE = mmio.BitAt(pwrCSR, 9)
	c.BRR = mmio.BitAt(pwrCSR, 3)
	c.VOS = mmio.BitAt(pwrCR, 14)
	c.VOSScales = 2
	c.VOSCodes = [3]uint32{1, 0}
	c.VOSReady = mmio.BitAt(pwrCSR, 14)
	return c
}

// F7 extends the F4 block with the over-drive enable.
func (F7) PWR() PWRCatalog {
	c := F4{}.PWR()
	c.ODEN = mmio.BitAt(pwrCR, 12)
	return c
}

func lseriesPWR() PWRCatalog {
	c := classicPWR()
	c.VOS = mmio.FieldAt(pwrCR, 0x3, 11)
	c.VOSScales = 3
	c.VOSCodes = [3]uint32{1, 2, 3} // 1.8 V, 1.5 V, 1.2 V
	c.VOSBusy = mmio.BitAt(pwrCSR, 4)
	return c
}

func (L0) PWR() PWRCatalog { return lseriesPWR() }
func (L1) PWR() PWRCatalog { return lseriesPWR() }

// L4 has no LPDS/PDDS bits; low-power entry goes through CR1.LPMS, which the
// PWR driver does not drive.
func (L4) PWR() PWRCatalog {
	return PWRCatalog{
		CWUF:      mmio.FieldAt(pwrSCR, 0x1F, 0),
		CSBF:      mmio.BitAt(pwrSCR, 8),
		PVDE:      mmio.BitAt(pwrCR2, 0),
		PLS:       mmio.FieldAt(pwrCR2, 0x7, 1),
		DBP:       mmio.BitAt(pwrCR1, 8),
		WUF:       mmio.FieldAt(pwrSR1, 0x1F, 0),
		SBF:       mmio.BitAt(pwrSR1, 8),
		PVDO:      mmio.BitAt(pwrSR2, 11),
		VOS:       mmio.FieldAt(pwrCR1, 0x3, 9),
		VOSScales: 2,
		VOSCodes:  [3]uint32{1, 2},
		VOSBusy:   mmio.BitAt(pwrSR2, 10),
	}
}
