// Package family names the supported chip families and resolves a set of
// build tags to exactly one of them.
//
// The build itself selects a family through the target package; this package
// carries the same rule for tools, which need it at run time.
package family

import (
	"sort"
	"strings"

	"mcuhal/errcode"
)

type ID uint8

const (
	Unknown ID = iota
	STM32F0
	STM32F1
	STM32F2
	STM32F3
	STM32F4
	STM32F7
	STM32L0
	STM32L1
	STM32L4
	NRF51
	NRF52
)

type Vendor uint8

const (
	VendorST Vendor = iota + 1
	VendorNordic
)

func (v Vendor) String() string {
	switch v {
	case VendorST:
		return "st"
	case VendorNordic:
		return "nordic"
	default:
		return "unknown"
	}
}

// Descriptor identifies one family. Tag is the build tag that selects it.
type Descriptor struct {
	ID     ID
	Tag    string
	Name   string
	Vendor Vendor
	Core   string
}

func (d Descriptor) String() string { return d.Name }

var all = [...]Descriptor{
	{STM32F0, "stm32f0", "STM32F0", VendorST, "cortex-m0"},
	{STM32F1, "stm32f1", "STM32F1", VendorST, "cortex-m3"},
	{STM32F2, "stm32f2", "STM32F2", VendorST, "cortex-m3"},
	{STM32F3, "stm32f3", "STM32F3", VendorST, "cortex-m4"},
	{STM32F4, "stm32f4", "STM32F4", VendorST, "cortex-m4"},
	{STM32F7, "stm32f7", "STM32F7", VendorST, "cortex-m7"},
	{STM32L0, "stm32l0", "STM32L0", VendorST, "cortex-m0+"},
	{STM32L1, "stm32l1", "STM32L1", VendorST, "cortex-m3"},
	{STM32L4, "stm32l4", "STM32L4", VendorST, "cortex-m4"},
	{NRF51, "nrf51", "nRF51", VendorNordic, "cortex-m0"},
	{NRF52, "nrf52", "nRF52", VendorNordic, "cortex-m4"},
}

// All returns every supported family in ID order.
func All() []Descriptor { return append([]Descriptor(nil), all[:]...) }

func (id ID) Descriptor() (Descriptor, bool) {
	if id == Unknown || int(id) > len(all) {
		return Descriptor{}, false
	}
	return all[id-1], true
}

func (id ID) String() string {
	if d, ok := id.Descriptor(); ok {
		return d.Name
	}
	return "unknown"
}

// Lookup finds a family by build tag or name, case-insensitively.
func Lookup(s string) (Descriptor, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range all {
		if d.Tag == s || strings.ToLower(d.Name) == s {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Resolve picks the single family selected by tags. Tags that name no family
// are ignored. Zero matches is errcode.NoFamily; more than one is
// errcode.AmbiguousFamily. Repeating the same tag is not ambiguous.
func Resolve(tags []string) (Descriptor, error) {
	seen := map[ID]bool{}
	var hits []Descriptor
	for _, t := range tags {
		d, ok := lookupTag(t)
		if !ok || seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		hits = append(hits, d)
	}
	switch len(hits) {
	case 0:
		return Descriptor{}, &errcode.E{C: errcode.NoFamily, Op: "family.resolve", Msg: "target family not defined"}
	case 1:
		return hits[0], nil
	default:
		sort.Slice(hits, func(i, j int) bool { return hits[i].ID < hits[j].ID })
		names := make([]string, len(hits))
		for i, d := range hits {
			names[i] = d.Tag
		}
		return Descriptor{}, &errcode.E{C: errcode.AmbiguousFamily, Op: "family.resolve", Msg: strings.Join(names, ",")}
	}
}

func lookupTag(t string) (Descriptor, bool) {
	t = strings.TrimSpace(t)
	for _, d := range all {
		if d.Tag == t {
			return d, true
		}
	}
	return Descriptor{}, false
}
