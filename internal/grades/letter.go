package grades

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLetter is returned when a raw grade string falls outside the
// enumeration.
var ErrUnknownLetter = errors.New("unknown grade letter")

// Letter is a closed enumeration of the letter grades awarded on the S-F scale.
type Letter string

const (
	LetterS Letter = "S"
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
	LetterE Letter = "E"
	LetterF Letter = "F"
)

var gradePoints = map[Letter]float64{
	LetterS: 4.0,
	LetterA: 3.7,
	LetterB: 3.3,
	LetterC: 3.0,
	LetterD: 2.7,
	LetterE: 2.3,
	LetterF: 0.0,
}

var gradePercent = map[Letter]float64{
	LetterS: 95,
	LetterA: 90,
	LetterB: 85,
	LetterC: 80,
	LetterD: 75,
	LetterE: 70,
	LetterF: 65,
}

// ParseLetter validates a raw grade string against the enumeration.
// An unknown letter is a checked error, never a silent zero.
func ParseLetter(raw string) (Letter, error) {
	letter := Letter(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := gradePoints[letter]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownLetter, raw)
	}

	return letter, nil
}

// Valid reports whether the letter belongs to the enumeration.
func (l Letter) Valid() bool {
	_, ok := gradePoints[l]
	return ok
}

// Points returns the GPA point value on the 4.0 scale.
// The boolean is false for letters outside the enumeration; callers must
// treat that as "no grade yet", not as zero.
func (l Letter) Points() (float64, bool) {
	points, ok := gradePoints[l]
	return points, ok
}

// Percent returns the display percentage equivalent of the letter.
func (l Letter) Percent() (float64, bool) {
	percent, ok := gradePercent[l]
	return percent, ok
}

// Letters returns the enumeration in descending point order.
func Letters() []Letter {
	return []Letter{LetterS, LetterA, LetterB, LetterC, LetterD, LetterE, LetterF}
}
