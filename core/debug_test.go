package core

import "testing"

func TestToggleRingOrder(t *testing.T) {
	ClearToggleRing()
	defer ClearToggleRing()

	for i := uint32(1); i <= ToggleRingSize+5; i++ {
		RecordToggle(ToggleEvent{Seq: i, Tick: i * 250, High: i%2 == 1})
	}

	events := ToggleEvents()
	if len(events) != ToggleRingSize {
		t.Fatalf("expected %d events, got %d", ToggleRingSize, len(events))
	}
	if events[0].Seq != 6 {
		t.Errorf("expected oldest surviving seq 6, got %d", events[0].Seq)
	}
	if last := events[len(events)-1]; last.Seq != ToggleRingSize+5 {
		t.Errorf("expected newest seq %d, got %d", ToggleRingSize+5, last.Seq)
	}
}

func TestDumpToggleRing(t *testing.T) {
	ClearToggleRing()
	defer ClearToggleRing()

	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	RecordToggle(ToggleEvent{Seq: 1, Tick: 0, High: true})
	RecordToggle(ToggleEvent{Seq: 2, Tick: 250, High: false})
	DumpToggleRing()

	want := []string{
		"[TOGGLE] === Toggle Ring Dump ===",
		"[TOGGLE] seq=1 tick=0 level=1",
		"[TOGGLE] seq=2 tick=250 level=0",
		"[TOGGLE] === End Dump ===",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestDebugPrintlnEnabled(t *testing.T) {
	var got []string
	SetDebugWriter(func(s string) { got = append(got, s) })
	defer SetDebugWriter(func(string) {})
	defer SetDebugEnabled(true)

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	SetDebugEnabled(true)
	DebugPrintln("shown")

	if len(got) != 1 || got[0] != "shown" {
		t.Errorf("expected only the enabled message, got %v", got)
	}
}

func TestUtoa(t *testing.T) {
	testCases := map[uint32]string{
		0:          "0",
		7:          "7",
		250:        "250",
		4294967295: "4294967295",
	}

	for n, want := range testCases {
		if got := Utoa(n); got != want {
			t.Errorf("Utoa(%d) = %q, want %q", n, got, want)
		}
	}
}
