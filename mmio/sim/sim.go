// Package sim is a simulated register address space for host builds.
//
// Memory implements mmio.Bus. Unwritten addresses read as zero. Store hooks let
// a test or tool model peripheral behaviour (an event register going high
// after a data write, for example), and every store is kept in an ordered
// trace so a caller can assert the exact register sequence a driver produced.
package sim

import (
	"encoding/binary"
	"io"
	"sort"
	"sync"

	"github.com/marcinbor85/gohex"
)

type Op uint8

const (
	OpLoad Op = iota
	OpStore
)

func (o Op) String() string {
	if o == OpStore {
		return "W"
	}
	return "R"
}

// Access is one recorded bus cycle.
type Access struct {
	Op    Op
	Addr  uintptr
	Value uint32
}

// StoreHook runs after a store to its address, with the memory lock released.
type StoreHook func(m *Memory, v uint32)

type Memory struct {
	mu         sync.Mutex
	words      map[uintptr]uint32
	hooks      map[uintptr][]StoreHook
	trace      []Access
	traceLoads bool
}

func New() *Memory {
	return &Memory{
		words: make(map[uintptr]uint32),
		hooks: make(map[uintptr][]StoreHook),
	}
}

// TraceLoads enables recording of loads as well as stores. Busy-wait loops
// make load traces long; leave off unless a test needs read ordering.
func (m *Memory) TraceLoads(on bool) {
	m.mu.Lock()
	m.traceLoads = on
	m.mu.Unlock()
}

func (m *Memory) Load32(addr uintptr) uint32 {
	m.mu.Lock()
	v := m.words[addr]
	if m.traceLoads {
		m.trace = append(m.trace, Access{Op: OpLoad, Addr: addr, Value: v})
	}
	m.mu.Unlock()
	return v
}

func (m *Memory) Store32(addr uintptr, v uint32) {
	m.mu.Lock()
	m.words[addr] = v
	m.trace = append(m.trace, Access{Op: OpStore, Addr: addr, Value: v})
	hooks := m.hooks[addr]
	m.mu.Unlock()
	for _, h := range hooks {
		h(m, v)
	}
}

// OnStore registers h for stores to addr.
func (m *Memory) OnStore(addr uintptr, h StoreHook) {
	m.mu.Lock()
	m.hooks[addr] = append(m.hooks[addr], h)
	m.mu.Unlock()
}

// Peek reads without tracing.
func (m *Memory) Peek(addr uintptr) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.words[addr]
}

// Poke writes without tracing or hooks; used to model hardware-side changes.
func (m *Memory) Poke(addr uintptr, v uint32) {
	m.mu.Lock()
	m.words[addr] = v
	m.mu.Unlock()
}

// Trace returns a copy of the recorded accesses.
func (m *Memory) Trace() []Access {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Access(nil), m.trace...)
}

// Stores returns the values stored to addr, in order.
func (m *Memory) Stores(addr uintptr) []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []uint32
	for _, a := range m.trace {
		if a.Op == OpStore && a.Addr == addr {
			out = append(out, a.Value)
		}
	}
	return out
}

func (m *Memory) ResetTrace() {
	m.mu.Lock()
	m.trace = m.trace[:0]
	m.mu.Unlock()
}

// DumpIntelHex writes every written word as little-endian Intel HEX.
// Consecutive words are merged into one segment.
func (m *Memory) DumpIntelHex(w io.Writer) error {
	m.mu.Lock()
	addrs := make([]uintptr, 0, len(m.words))
	for a := range m.words {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	mem := gohex.NewMemory()
	var (
		start uintptr
		seg   []byte
	)
	flush := func() error {
		if len(seg) == 0 {
			return nil
		}
		err := mem.AddBinary(uint32(start), seg)
		seg = nil
		return err
	}
	var err error
	for _, a := range addrs {
		if len(seg) > 0 && a != start+uintptr(len(seg)) {
			if err = flush(); err != nil {
				break
			}
		}
		if len(seg) == 0 {
			start = a
		}
		seg = binary.LittleEndian.AppendUint32(seg, m.words[a])
	}
	m.mu.Unlock()
	if err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}
	return mem.DumpIntelHex(w, 16)
}
