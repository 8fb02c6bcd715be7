package stm32

// APB1 peripherals sit at the same addresses on every sub-family. RCC is at
// 0x4002_3800 on F2/F4/F7/L1 and 0x4002_1000 elsewhere.
const (
	pwrBase = 0x4000_7000
	rtcBase = 0x4000_2800
	dacBase = 0x4000_7400
	ethBase = 0x4002_8000

	rccAHB  = 0x4002_1000
	rccAHB1 = 0x4002_3800
)

func (F0) MemoryMap() MemoryMap {
	return MemoryMap{RCC: rccAHB, PWR: pwrBase, RTC: rtcBase, DAC: dacBase}
}

func (F1) MemoryMap() MemoryMap {
	return MemoryMap{RCC: rccAHB, PWR: pwrBase, RTC: rtcBase, DAC: dacBase, ETH: ethBase}
}

func (F2) MemoryMap() MemoryMap {
	return MemoryMap{RCC: rccAHB1, PWR: pwrBase, RTC: rtcBase, DAC: dacBase}
}

func (F3) MemoryMap() MemoryMap {
	return MemoryMap{RCC: rccAHB, PWR: pwrBase, RTC: rtcBase, DAC: dacBase}
}

func (F4) MemoryMap() MemoryMap {
	return MemoryMap{RCC: rccAHB1, PWR: pwrBase, RTC: rtcBase, DAC: dacBase, ETH: ethBase}
}

func (F7) MemoryMap() MemoryMap {
	return MemoryMap{RCC: rccAHB1, PWR: pwrBase, RTC: rtcBase, DAC: dacBase}
}

func (L0) MemoryMap() MemoryMap {
	return MemoryMap{RCC: rccAHB, PWR: pwrBase, RTC: rtcBase, DAC: dacBase}
}

func (L1) MemoryMap() MemoryMap {
	return MemoryMap{RCC: rccAHB1, PWR: pwrBase, RTC: rtcBase, DAC: dacBase}
}

func (L4) MemoryMap() MemoryMap {
	return MemoryMap{RCC: rccAHB, PWR: pwrBase, RTC: rtcBase, DAC: dacBase}
}
