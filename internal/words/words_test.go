package words

import "testing"

func TestChoicesDistinct(t *testing.T) {
	for i := 0; i < 20; i++ {
		ws := Choices(3)
		if len(ws) != 3 {
			t.Fatalf("got %d words", len(ws))
		}
		seen := map[string]bool{}
		for _, w := range ws {
			if seen[w] {
				t.Fatalf("duplicate word %q in %v", w, ws)
			}
			seen[w] = true
			if !Contains(w) {
				t.Fatalf("choice %q not in pool", w)
			}
		}
	}
}

func TestChoicesClampsToPool(t *testing.T) {
	ws := Choices(10000)
	if len(ws) == 0 || len(ws) > 10000 {
		t.Fatalf("got %d words", len(ws))
	}
}

func TestContains(t *testing.T) {
	if !Contains("rain") {
		t.Fatal("pool should contain rain")
	}
	if Contains("definitely-not-a-word") {
		t.Fatal("unexpected pool member")
	}
}
