// Package scoring turns a finished debate transcript into a score breakdown,
// a qualitative rating and a list of improvement tips. Everything here is
// pure: fixed integer arithmetic over the user's turns, no I/O and no
// semantic analysis.
package scoring

import (
	"unicode/utf8"

	"github.com/raphaelgruber/rebuttal-go/internal/models"
)

// Evaluate computes the score breakdown for a transcript. Only turns with
// role "user" contribute. Each sub-score is a base term plus a per-turn bonus
// plus a floored share of the average argument length, capped at 100:
//
//	logical    = min(100, 60 + 5*count + avg/20)
//	confidence = min(100, 50 + 6*count + avg/15)
//	clarity    = min(100, 55 + 7*count + avg/25)
//	overall    = (logical + confidence + clarity) / 3
//
// All divisions truncate. A transcript without user turns scores zero; the
// session layer guards against ever reaching that case.
func Evaluate(turns []models.Turn) models.Score {
	count := 0
	total := 0
	for _, t := range turns {
		if t.Role != models.RoleUser {
			continue
		}
		count++
		total += utf8.RuneCountInString(t.Content)
	}
	if count == 0 {
		return models.Score{}
	}

	// floor(avg/k) == total/(count*k) for non-negative integers, so the
	// average never needs to be materialized as a float.
	logical := cap100(60 + 5*count + total/(count*20))
	confidence := cap100(50 + 6*count + total/(count*15))
	clarity := cap100(55 + 7*count + total/(count*25))

	return models.Score{
		Logical:    logical,
		Confidence: confidence,
		Clarity:    clarity,
		Overall:    (logical + confidence + clarity) / 3,
	}
}

func cap100(v int) int {
	if v > 100 {
		return 100
	}
	return v
}
