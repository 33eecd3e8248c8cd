package game

import "testing"

func seatPlayers(names ...string) *Roster {
	r := NewRoster()
	for i, n := range names {
		r.Add(Player{ID: string(rune('a' + i)), Name: n})
	}
	return r
}

func TestRosterRotationInJoinOrder(t *testing.T) {
	r := seatPlayers("A", "B", "C")

	var order []string
	for {
		d := r.NextDrawer()
		if d == nil {
			break
		}
		d.HasDrawn = true
		order = append(order, d.Name)
	}
	if len(order) != 3 || order[0] != "A" || order[1] != "B" || order[2] != "C" {
		t.Fatalf("rotation order = %v", order)
	}

	// A fresh pass starts over.
	r.ResetDrawn()
	if d := r.NextDrawer(); d == nil || d.Name != "A" {
		t.Fatalf("after reset, next = %v", d)
	}
}

func TestRosterSkipsDisconnected(t *testing.T) {
	r := seatPlayers("A", "B")
	r.Get("a").IsConnected = false

	if d := r.NextDrawer(); d == nil || d.Name != "B" {
		t.Fatalf("next = %v, want B", d)
	}
}

func TestRosterRemoveKeepsOrder(t *testing.T) {
	r := seatPlayers("A", "B", "C")
	r.Remove("b")

	if r.Len() != 2 {
		t.Fatalf("len = %d", r.Len())
	}
	snap := r.Snapshot()
	if snap[0].Name != "A" || snap[1].Name != "C" {
		t.Fatalf("snapshot = %v", snap)
	}
	if r.Get("b") != nil {
		t.Fatal("removed player still resolvable")
	}
}

func TestRankingsTieBreaksByJoinOrder(t *testing.T) {
	r := seatPlayers("A", "B", "C")
	r.Get("a").Score = 50
	r.Get("b").Score = 90
	r.Get("c").Score = 50

	ranked := r.Rankings()
	if ranked[0].Name != "B" || ranked[0].Rank != 1 {
		t.Fatalf("first = %v", ranked[0])
	}
	// A and C tie at 50; A joined first.
	if ranked[1].Name != "A" || ranked[2].Name != "C" {
		t.Fatalf("tie order = %s, %s", ranked[1].Name, ranked[2].Name)
	}
	if ranked[1].Rank != 2 || ranked[2].Rank != 3 {
		t.Fatalf("ranks = %d, %d", ranked[1].Rank, ranked[2].Rank)
	}
}
