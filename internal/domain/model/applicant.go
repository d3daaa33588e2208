// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for date cells in the spreadsheet.
const DateLayout = "2006-01-02"

// SkillCount is the number of rated skills per applicant.
const SkillCount = 7

// Skill column names, in worksheet column order.
var skillColumns = []string{
	"Throwing Skill",
	"Strength Skill",
	"Data Skill",
	"Aptitude",
	"Professionalism",
	"Culture Fit",
	"Trust",
}

// Ratings holds the seven per-skill ratings for an applicant.
// A zero value means the skill has not been rated yet.
type Ratings struct {
	Throwing        int
	Strength        int
	Data            int
	Aptitude        int
	Professionalism int
	CultureFit      int
	Trust           int
}

// Values returns the ratings in worksheet column order.
func (r Ratings) Values() [SkillCount]int {
	return [SkillCount]int{
		r.Throwing,
		r.Strength,
		r.Data,
		r.Aptitude,
		r.Professionalism,
		r.CultureFit,
		r.Trust,
	}
}

// RatingsFromValues builds Ratings from values in worksheet column order.
func RatingsFromValues(v [SkillCount]int) Ratings {
	return Ratings{
		Throwing:        v[0],
		Strength:        v[1],
		Data:            v[2],
		Aptitude:        v[3],
		Professionalism: v[4],
		CultureFit:      v[5],
		Trust:           v[6],
	}
}

// Applicant represents one row of a worksheet.
type Applicant struct {
	Name      string
	AppliedOn time.Time
	BornOn    time.Time
	Ratings   Ratings
	// Score is the derived mean of the recorded ratings, never set directly.
	Score float64
	// RowIndex is the zero-based position in the worksheet data region at
	// fetch time. Positions are only valid until the next remote write.
	RowIndex int
}

// Header returns the canonical worksheet header row.
func Header() []string {
	h := make([]string, 0, 3+SkillCount+1)
	h = append(h, "name", "date of application", "date of birth")
	h = append(h, skillColumns...)
	h = append(h, "Applicant Score")
	return h
}

// ToRow encodes the applicant as a worksheet row matching Header().
func (a Applicant) ToRow() []string {
	row := make([]string, 0, 3+SkillCount+1)
	row = append(row, a.Name, formatDate(a.AppliedOn), formatDate(a.BornOn))
	for _, v := range a.Ratings.Values() {
		if v == 0 {
			row = append(row, "")
			continue
		}
		row = append(row, strconv.Itoa(v))
	}
	row = append(row, strconv.FormatFloat(a.Score, 'f', 2, 64))
	return row
}

// ParseRow decodes one worksheet row into an Applicant. Missing or
// malformed rating and date cells decode leniently to their zero values;
// only a blank name is rejected.
func ParseRow(index int, cells []string) (Applicant, error) {
	name := strings.TrimSpace(cell(cells, 0))
	if name == "" {
		return Applicant{}, fmt.Errorf("row %d: empty applicant name", index)
	}

	a := Applicant{
		Name:      name,
		AppliedOn: parseDate(cell(cells, 1)),
		BornOn:    parseDate(cell(cells, 2)),
		RowIndex:  index,
	}

	var v [SkillCount]int
	for i := 0; i < SkillCount; i++ {
		v[i] = parseRating(cell(cells, 3+i))
	}
	a.Ratings = RatingsFromValues(v)
	return a, nil
}

// cell returns the i-th cell or "" when the row is ragged.
func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func parseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func parseRating(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
