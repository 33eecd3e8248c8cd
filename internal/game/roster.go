package game

import "sort"

// playerSeat is the roster's internal, mutable view of a player.
type playerSeat struct {
	Player
	joinOrder int
}

// Roster tracks a room's players in join order. Join order is turn order;
// leaving never renumbers the remaining players' slots. The roster is only
// touched from the owning session goroutine.
type Roster struct {
	seats    []*playerSeat
	nextSeat int
}

func NewRoster() *Roster { return &Roster{} }

func (r *Roster) Len() int { return len(r.seats) }

// ConnectedCount counts players currently connected.
func (r *Roster) ConnectedCount() int {
	n := 0
	for _, s := range r.seats {
		if s.IsConnected {
			n++
		}
	}
	return n
}

func (r *Roster) Add(p Player) {
	p.IsConnected = true
	r.seats = append(r.seats, &playerSeat{Player: p, joinOrder: r.nextSeat})
	r.nextSeat++
}

func (r *Roster) Remove(id string) bool {
	for i, s := range r.seats {
		if s.ID == id {
			r.seats = append(r.seats[:i], r.seats[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Roster) Get(id string) *Player {
	for _, s := range r.seats {
		if s.ID == id {
			return &s.Player
		}
	}
	return nil
}

// First returns the earliest-joined player still in the room.
func (r *Roster) First() *Player {
	if len(r.seats) == 0 {
		return nil
	}
	return &r.seats[0].Player
}

// NextDrawer picks the connected player with hasDrawn=false and the earliest
// join order. Returns nil when everyone connected has drawn.
func (r *Roster) NextDrawer() *Player {
	for _, s := range r.seats {
		if s.IsConnected && !s.HasDrawn {
			return &s.Player
		}
	}
	return nil
}

// ResetDrawn clears hasDrawn for a fresh rotation pass.
func (r *Roster) ResetDrawn() {
	for _, s := range r.seats {
		s.HasDrawn = false
	}
}

// ResetScores zeroes all scores for a new game.
func (r *Roster) ResetScores() {
	for _, s := range r.seats {
		s.Score = 0
	}
}

// ClearDrawing drops the isDrawing flag everywhere. At most one player holds
// it during the drawing phase.
func (r *Roster) ClearDrawing() {
	for _, s := range r.seats {
		s.IsDrawing = false
	}
}

// Snapshot returns player values in join order, safe to hand to the hub.
func (r *Roster) Snapshot() []Player {
	out := make([]Player, len(r.seats))
	for i, s := range r.seats {
		out[i] = s.Player
	}
	return out
}

// Rankings sorts players by score descending; ties go to the earlier joiner.
// Ranks are 1-based.
func (r *Roster) Rankings() []RankedPlayer {
	seats := make([]*playerSeat, len(r.seats))
	copy(seats, r.seats)
	sort.SliceStable(seats, func(i, j int) bool {
		if seats[i].Score != seats[j].Score {
			return seats[i].Score > seats[j].Score
		}
		return seats[i].joinOrder < seats[j].joinOrder
	})

	out := make([]RankedPlayer, len(seats))
	for i, s := range seats {
		out[i] = RankedPlayer{Player: s.Player, Rank: i + 1}
	}
	return out
}
