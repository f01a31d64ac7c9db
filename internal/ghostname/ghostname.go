// Package ghostname generates the pseudonyms users are known by in the vault.
package ghostname

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Shadow", "Phantom", "Spectral", "Ethereal", "Mystic", "Ghastly", "Eerie",
	"Crimson", "Azure", "Ancient", "Forgotten", "Silent", "Whispering", "Misty",
	"Cobweb", "Moonlit", "Starless", "Cryptic", "Gloomy", "Restless", "Veiled",
	"Shrouded", "Hollow", "Dusky", "Ghostly", "Hazy", "Faint", "Foggy", "Vacant",
	"Soundless", "Still",
}

var nouns = []string{
	"Hacker", "Coder", "Developer", "Programmer", "Ninja", "Wizard", "Alchemist",
	"Architect", "Builder", "Engineer", "Explorer", "Pioneer", "Trailblazer",
	"Navigator", "Captain", "Guardian", "Sentinel", "Watcher", "Scholar",
	"Apprentice", "Artisan", "Innovator", "Dreamer", "Thinker", "Composer",
	"Storyteller", "Analyst", "Debugger", "Mentor",
}

var numbers = []int{
	11, 13, 17, 19, 22, 23, 29, 31, 33, 37, 41, 43, 44, 47, 53, 55, 59, 61, 66,
	67, 71, 73, 77, 79, 83, 88, 89, 97, 99, 101, 202, 303, 404, 505, 606, 707,
	808, 909, 997,
}

// Generator produces "Adjective-Noun-Number" names. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator seeded from the clock.
func NewGenerator() *Generator {
	return NewGeneratorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGeneratorWithRand uses rng, which makes output reproducible in tests.
func NewGeneratorWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	adjective := adjectives[g.rng.Intn(len(adjectives))]
	noun := nouns[g.rng.Intn(len(nouns))]
	number := numbers[g.rng.Intn(len(numbers))]
	return fmt.Sprintf("%s-%s-%d", adjective, noun, number)
}
