package board

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"mcuhal/errcode"
)

// Load reads one YAML plan and validates it. Pins left out of the document
// are not wired.
//
//	name: custom
//	chip: nrf52840
//	uart:
//	  - id: uart0
//	    tx: 6
//	    rx: 8
//	    baud: 1000000
func Load(r io.Reader) (Plan, error) {
	var doc struct {
		Name string `yaml:"name"`
		Chip string `yaml:"chip"`
		UART []struct {
			ID     string `yaml:"id"`
			TX     *int   `yaml:"tx"`
			RX     *int   `yaml:"rx"`
			RTS    *int   `yaml:"rts"`
			CTS    *int   `yaml:"cts"`
			Baud   uint32 `yaml:"baud"`
			Parity bool   `yaml:"parity"`
		} `yaml:"uart"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Plan{}, &errcode.E{C: errcode.InvalidPlan, Op: "board.load", Err: err}
	}
	wired := func(p *int) int {
		if p == nil {
			return NotWired
		}
		return *p
	}
	p := Plan{Name: doc.Name, Chip: doc.Chip}
	for _, u := range doc.UART {
		p.UART = append(p.UART, UARTPlan{
			ID:     u.ID,
			TX:     wired(u.TX),
			RX:     wired(u.RX),
			RTS:    wired(u.RTS),
			CTS:    wired(u.CTS),
			Baud:   u.Baud,
			Parity: u.Parity,
		})
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func LoadFile(path string) (Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return Plan{}, err
	}
	defer f.Close()
	return Load(f)
}
