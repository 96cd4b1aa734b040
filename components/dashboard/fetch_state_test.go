package dashboard

import (
	"errors"
	"testing"
)

func TestFetchStateCompleteAcceptsCurrentToken(t *testing.T) {
	state := NewFetchState[[]RevenuePoint]()
	token := state.Begin()
	if snap := state.Snapshot(); !snap.Loading {
		t.Fatalf("expected loading after Begin")
	}
	if !state.Complete(token, []RevenuePoint{{Month: "2025-01", Revenue: 100}}) {
		t.Fatalf("expected current token accepted")
	}
	snap := state.Snapshot()
	if snap.Loading || !snap.HasData || len(snap.Data) != 1 {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}

func TestFetchStateDiscardsStaleCompletion(t *testing.T) {
	state := NewFetchState[string]()
	stale := state.Begin()
	fresh := state.Begin()
	if state.Complete(stale, "old") {
		t.Fatalf("expected stale token rejected")
	}
	if !state.Complete(fresh, "new") {
		t.Fatalf("expected fresh token accepted")
	}
	if snap := state.Snapshot(); snap.Data != "new" {
		t.Fatalf("expected newest result kept, got %q", snap.Data)
	}
}

func TestFetchStateFailKeepsPriorData(t *testing.T) {
	state := NewFetchState[int]()
	token := state.Begin()
	state.Complete(token, 42)
	token = state.Begin()
	loadErr := errors.New("timeout")
	if !state.Fail(token, loadErr) {
		t.Fatalf("expected failure recorded")
	}
	snap := state.Snapshot()
	if !errors.Is(snap.Err, loadErr) {
		t.Fatalf("expected error surfaced, got %v", snap.Err)
	}
	if !snap.HasData || snap.Data != 42 {
		t.Fatalf("expected prior data retained alongside error, got %#v", snap)
	}
}

func TestFetchStateFailDiscardsStaleToken(t *testing.T) {
	state := NewFetchState[int]()
	stale := state.Begin()
	fresh := state.Begin()
	if state.Fail(stale, errors.New("old failure")) {
		t.Fatalf("expected stale failure rejected")
	}
	if !state.Complete(fresh, 7) {
		t.Fatalf("expected fresh completion accepted")
	}
	if snap := state.Snapshot(); snap.Err != nil {
		t.Fatalf("expected no error after fresh completion, got %v", snap.Err)
	}
}

func TestFetchStateResetInvalidatesOutstandingTokens(t *testing.T) {
	state := NewFetchState[int]()
	token := state.Begin()
	state.Reset()
	if state.Complete(token, 99) {
		t.Fatalf("expected token invalidated by Reset")
	}
	snap := state.Snapshot()
	if snap.Loading || snap.HasData || snap.Err != nil {
		t.Fatalf("expected idle state after Reset, got %#v", snap)
	}
}
