package family

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"

	"mcuhal/errcode"
)

//go:embed chips.yaml
var rawChips []byte

type chipTable struct {
	Families []struct {
		Tag   string   `yaml:"tag"`
		Chips []string `yaml:"chips"`
	} `yaml:"families"`
}

type chipEntry struct {
	part string
	id   ID
}

var chips []chipEntry

func init() {
	var t chipTable
	if err := yaml.Unmarshal(rawChips, &t); err != nil {
		panic(err)
	}
	for _, f := range t.Families {
		d, ok := lookupTag(f.Tag)
		if !ok {
			panic("chips.yaml: unknown family tag " + f.Tag)
		}
		for _, c := range f.Chips {
			chips = append(chips, chipEntry{part: strings.ToLower(c), id: d.ID})
		}
	}
}

// ForChip maps a part number to its family. The longest listed part that
// prefixes name wins; failing that, a family tag that prefixes name.
func ForChip(name string) (Descriptor, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	best := -1
	for i, c := range chips {
		if strings.HasPrefix(n, c.part) && (best < 0 || len(c.part) > len(chips[best].part)) {
			best = i
		}
	}
	if best >= 0 {
		d, _ := chips[best].id.Descriptor()
		return d, nil
	}
	for _, d := range all {
		if n != "" && strings.HasPrefix(n, d.Tag) {
			return d, nil
		}
	}
	return Descriptor{}, &errcode.E{C: errcode.UnknownChip, Op: "family.chip", Msg: name}
}

// Chips lists the known part numbers of a family.
func Chips(id ID) []string {
	var out []string
	for _, c := range chips {
		if c.id == id {
			out = append(out, c.part)
		}
	}
	return out
}
