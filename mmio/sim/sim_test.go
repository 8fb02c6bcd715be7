package sim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/marcinbor85/gohex"
)

func TestUnwrittenReadsZero(t *testing.T) {
	m := New()
	if m.Load32(0x1234) != 0 {
		t.Fatal("fresh memory must read zero")
	}
	if len(m.Trace()) != 0 {
		t.Fatal("loads are not traced by default")
	}
	m.TraceLoads(true)
	m.Load32(0x1234)
	if tr := m.Trace(); len(tr) != 1 || tr[0].Op != OpLoad {
		t.Fatalf("load trace: %+v", tr)
	}
}

func TestStoreHookSeesValueAndCanPoke(t *testing.T) {
	m := New()
	m.OnStore(0x51C, func(m *Memory, v uint32) {
		m.Poke(0x11C, 1)
	})
	m.Store32(0x51C, 'A')

	if m.Peek(0x11C) != 1 {
		t.Fatal("hook did not run")
	}
	if got := m.Stores(0x51C); len(got) != 1 || got[0] != 'A' {
		t.Fatalf("stores: %v", got)
	}
	// Pokes are hardware-side and never traced.
	if len(m.Stores(0x11C)) != 0 {
		t.Fatal("poke was traced")
	}
}

func TestTraceOrderAndReset(t *testing.T) {
	m := New()
	m.Store32(8, 1)
	m.Store32(4, 2)
	m.Store32(8, 3)

	tr := m.Trace()
	want := []Access{{OpStore, 8, 1}, {OpStore, 4, 2}, {OpStore, 8, 3}}
	if len(tr) != len(want) {
		t.Fatalf("trace len %d", len(tr))
	}
	for i := range want {
		if tr[i] != want[i] {
			t.Fatalf("trace[%d] = %+v want %+v", i, tr[i], want[i])
		}
	}
	m.ResetTrace()
	if len(m.Trace()) != 0 {
		t.Fatal("ResetTrace")
	}
	if m.Peek(8) != 3 {
		t.Fatal("ResetTrace must keep contents")
	}
}

func TestDumpIntelHexRoundTrip(t *testing.T) {
	m := New()
	m.Store32(0x4000_2500, 4)
	m.Store32(0x4000_2504, 0xAABBCCDD)
	m.Store32(0x4000_2524, 0x0027_5000)

	var buf bytes.Buffer
	if err := m.DumpIntelHex(&buf); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), ":00000001FF") {
		t.Fatalf("missing EOF record:\n%s", buf.String())
	}

	back := gohex.NewMemory()
	if err := back.ParseIntelHex(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("parse: %v", err)
	}
	segs := back.GetDataSegments()
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Address != 0x4000_2500 || !bytes.Equal(segs[0].Data, []byte{4, 0, 0, 0, 0xDD, 0xCC, 0xBB, 0xAA}) {
		t.Fatalf("segment 0: %#x % x", segs[0].Address, segs[0].Data)
	}
	if segs[1].Address != 0x4000_2524 || !bytes.Equal(segs[1].Data, []byte{0x00, 0x50, 0x27, 0x00}) {
		t.Fatalf("segment 1: %#x % x", segs[1].Address, segs[1].Data)
	}
}
