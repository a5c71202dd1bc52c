package domain

import (
	"errors"

	dErrors "registrar/pkg/domain-errors"
)

var ErrInvalidRank = errors.New("rank must be one of professor, senior_lecturer, lecturer")

// Rank is the closed enumeration of academic ranks.
type Rank string

const (
	RankProfessor      Rank = "professor"
	RankSeniorLecturer Rank = "senior_lecturer"
	RankLecturer       Rank = "lecturer"
)

// ParseRank validates a raw rank string against the closed enumeration.
func ParseRank(raw string) (Rank, error) {
	switch Rank(raw) {
	case RankProfessor, RankSeniorLecturer, RankLecturer:
		return Rank(raw), nil
	default:
		return "", dErrors.Wrap(ErrInvalidRank, dErrors.CodeValidation, "invalid rank")
	}
}

// Valid reports whether the rank is a member of the closed enumeration.
func (r Rank) Valid() bool {
	switch r {
	case RankProfessor, RankSeniorLecturer, RankLecturer:
		return true
	}
	return false
}

func (r Rank) String() string { return string(r) }

// AccessLevel returns the capability level the rank grants. Extensions
// derive their provided access level from the owning academic's rank.
func (r Rank) AccessLevel() AccessLevel {
	switch r {
	case RankProfessor:
		return AccessLevelFull
	case RankSeniorLecturer:
		return AccessLevelElevated
	default:
		return AccessLevelRegular
	}
}

// AccessLevel is the closed enumeration of capability levels derived from
// rank. It is never assigned directly.
type AccessLevel string

const (
	AccessLevelRegular  AccessLevel = "regular"
	AccessLevelElevated AccessLevel = "elevated"
	AccessLevelFull     AccessLevel = "full"
)

func (l AccessLevel) Valid() bool {
	switch l {
	case AccessLevelRegular, AccessLevelElevated, AccessLevelFull:
		return true
	}
	return false
}

func (l AccessLevel) String() string { return string(l) }
