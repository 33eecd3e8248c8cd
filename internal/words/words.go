package words

import (
	"math/rand"
	"sync"
	"time"
)

// Default word pool. Kept deliberately simple: common, drawable nouns.
var pool = []string{
	"apple", "banana", "bridge", "butterfly", "camera", "candle", "castle",
	"cloud", "computer", "crocodile", "diamond", "dolphin", "dragon", "drum",
	"elephant", "feather", "fire", "flower", "forest", "ghost", "giraffe",
	"guitar", "hammer", "helicopter", "island", "kangaroo", "key", "kite",
	"ladder", "lighthouse", "lion", "moon", "mountain", "mushroom", "octopus",
	"owl", "penguin", "piano", "pirate", "pizza", "rain", "rainbow", "robot",
	"rocket", "sandwich", "scissors", "shark", "snowman", "spider", "star",
	"submarine", "sun", "telescope", "tiger", "tornado", "train", "umbrella",
	"volcano", "whale", "windmill", "wizard", "zebra",
}

var (
	mu  sync.Mutex
	rng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Choices returns n distinct words drawn at random from the pool.
func Choices(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}

	mu.Lock()
	idx := rng.Perm(len(pool))[:n]
	mu.Unlock()

	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

// Contains reports whether w is part of the pool.
func Contains(w string) bool {
	for _, p := range pool {
		if p == w {
			return true
		}
	}
	return false
}
