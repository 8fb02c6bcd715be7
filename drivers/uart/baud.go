package uart

import (
	"strconv"

	"mcuhal/chip/nrf"
	"mcuhal/errcode"
)

// Baud is a BAUDRATE register code. SetBaudRate writes it verbatim.
type Baud uint32

const (
	Baud1200   Baud = 0x0004_F000
	Baud2400   Baud = 0x0009_D000
	Baud4800   Baud = 0x0013_B000
	Baud9600   Baud = 0x0027_5000
	Baud14400  Baud = 0x003B_0000
	Baud19200  Baud = 0x004E_A000
	Baud28800  Baud = 0x0075_F000
	Baud31250  Baud = 0x0080_0000 // nRF52 only
	Baud38400  Baud = 0x009D_5000
	Baud56000  Baud = 0x00E5_0000 // nRF52 only
	Baud57600  Baud = 0x00EB_F000
	Baud76800  Baud = 0x013A_9000
	Baud115200 Baud = 0x01D7_E000
	Baud230400 Baud = 0x03AF_B000
	Baud250000 Baud = 0x0400_0000
	Baud460800 Baud = 0x075F_7000
	Baud921600 Baud = 0x0EBE_D000
	Baud1M     Baud = 0x1000_0000
)

var bauds = [...]struct {
	rate     uint32
	code     Baud
	extended bool
}{
	{1200, Baud1200, false},
	{2400, Baud2400, false},
	{4800, Baud4800, false},
	{9600, Baud9600, false},
	{14400, Baud14400, false},
	{19200, Baud19200, false},
	{28800, Baud28800, false},
	{31250, Baud31250, true},
	{38400, Baud38400, false},
	{56000, Baud56000, true},
	{57600, Baud57600, false},
	{76800, Baud76800, false},
	{115200, Baud115200, false},
	{230400, Baud230400, false},
	{250000, Baud250000, false},
	{460800, Baud460800, false},
	{921600, Baud921600, false},
	{1000000, Baud1M, false},
}

// Rate returns the nominal bit rate, or 0 for a code outside the set.
func (b Baud) Rate() uint32 {
	for _, e := range bauds {
		if e.code == b {
			return e.rate
		}
	}
	return 0
}

func (b Baud) String() string {
	if r := b.Rate(); r != 0 {
		return strconv.FormatUint(uint64(r), 10)
	}
	return "0x" + strconv.FormatUint(uint64(b), 16)
}

// Bauds lists the codes family F supports, slowest first.
func Bauds[F nrf.Family]() []Baud {
	var f F
	ext := f.UART().ExtendedBauds
	out := make([]Baud, 0, len(bauds))
	for _, e := range bauds {
		if !e.extended || ext {
			out = append(out, e.code)
		}
	}
	return out
}

// BaudFor maps a bit rate to the code of family F. Rates the family cannot
// generate are errcode.InvalidBaud.
func BaudFor[F nrf.Family](rate uint32) (Baud, error) {
	var f F
	for _, e := range bauds {
		if e.rate == rate && (!e.extended || f.UART().ExtendedBauds) {
			return e.code, nil
		}
	}
	return 0, &errcode.E{C: errcode.InvalidBaud, Op: "uart.baud", Msg: strconv.FormatUint(uint64(rate), 10)}
}
