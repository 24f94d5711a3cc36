package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the generator seed so a failing run can be replayed.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// TeamNames returns count distinct team names.
func (g *TestDataGenerator) TeamNames(count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("%s %s %d", g.faker.Adjective(), g.faker.Animal(), i+1)
	}
	return names
}

// RoundName returns a round name.
func (g *TestDataGenerator) RoundName() string {
	return fmt.Sprintf("%s %s", g.faker.Adjective(), g.faker.Noun())
}

// SetID returns a fresh round set identifier.
func (g *TestDataGenerator) SetID() string {
	return "set-" + g.faker.UUID()
}

// Shuffle returns a shuffled copy of ids.
func (g *TestDataGenerator) Shuffle(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	g.faker.ShuffleStrings(out)
	return out
}
