// Package seed generates synthetic applicants for a hiring spreadsheet.
// It backs the cmd/seed tool used to populate demo and staging sheets.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/LeifStrom/hiring/internal/domain/model"
	"github.com/LeifStrom/hiring/internal/domain/scoring"
)

// Applicant archetypes steering the rating distribution.
const (
	caseUnrated = 0
	caseWeak    = 1
	caseAverage = 2
	caseStrong  = 3
	caseSpiky   = 4

	archetypeCount = 5
)

var firstNames = []string{
	"Alice", "Bob", "Cara", "Dan", "Eva", "Frank", "Grace", "Hugo",
	"Iris", "Jonas", "Kim", "Lena", "Marcus", "Nina", "Oscar", "Priya",
	"Quinn", "Rosa", "Sam", "Tara", "Umar", "Vera", "Wes", "Yara", "Zoe",
}

var lastNames = []string{
	"Andersson", "Berg", "Carlsson", "Dahl", "Ek", "Forsberg", "Gustavsson",
	"Holm", "Isaksson", "Johansson", "Karlsson", "Lind", "Magnusson",
	"Nilsson", "Olsson", "Persson", "Qvist", "Rask", "Strom", "Toll",
	"Udd", "Vikander", "Wall", "Young", "Zetter",
}

// Generator produces applicants with a deterministic random source.
type Generator struct {
	rng  *rand.Rand
	now  time.Time
	used map[string]bool
}

// NewGenerator creates a generator seeded for reproducible output.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		now:  time.Now(),
		used: make(map[string]bool),
	}
}

// Next returns a fresh applicant with a name not handed out before.
func (g *Generator) Next() model.Applicant {
	a := model.Applicant{
		Name:      g.uniqueName(),
		AppliedOn: g.dateWithin(90),
		BornOn:    g.birthDate(),
	}
	a.Ratings = g.ratings()
	if score, err := scoring.Score(a.Ratings); err == nil {
		a.Score = score
	}
	return a
}

// uniqueName combines first and last names, suffixing on collision so a
// seeded sheet never trips the duplicate-name guard.
func (g *Generator) uniqueName() string {
	for {
		name := firstNames[g.rng.Intn(len(firstNames))] + " " + lastNames[g.rng.Intn(len(lastNames))]
		if g.used[name] {
			name = fmt.Sprintf("%s %d", name, g.rng.Intn(90)+10)
		}
		if !g.used[name] {
			g.used[name] = true
			return name
		}
	}
}

// dateWithin returns a date up to days in the past.
func (g *Generator) dateWithin(days int) time.Time {
	d := g.rng.Intn(days)
	return g.now.AddDate(0, 0, -d)
}

// birthDate returns a date of birth for a 20 to 45 year old.
func (g *Generator) birthDate() time.Time {
	years := 20 + g.rng.Intn(26)
	days := g.rng.Intn(365)
	return g.now.AddDate(-years, 0, -days)
}

// ratings draws a full rating set from one of the archetypes. Unrated
// applicants keep all ratings at zero, matching a row that has not been
// reviewed yet.
func (g *Generator) ratings() model.Ratings {
	var v [model.SkillCount]int
	switch g.rng.Intn(archetypeCount) {
	case caseUnrated:
		return model.Ratings{}
	case caseWeak:
		for i := range v {
			v[i] = g.between(1, 4)
		}
	case caseAverage:
		for i := range v {
			v[i] = g.between(4, 7)
		}
	case caseStrong:
		for i := range v {
			v[i] = g.between(7, 10)
		}
	case caseSpiky:
		for i := range v {
			v[i] = g.between(1, 10)
		}
	}
	return model.RatingsFromValues(v)
}

// between returns a rating in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}
