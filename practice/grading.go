package practice

import (
	"math"
	"sort"
	"strings"

	"gate-tracker-server/models"
)

// Grade checks a selected option against the stored answer.
func Grade(q models.Question, selected string) models.AttemptResult {
	return models.AttemptResult{
		IsCorrect:     strings.EqualFold(strings.TrimSpace(selected), q.CorrectOption),
		CorrectOption: q.CorrectOption,
		SolutionText:  q.SolutionText,
	}
}

// Summarize computes overall and per-subject accuracy. Subjects are sorted by id.
func Summarize(attempts []models.Attempt) models.Stats {
	stats := models.Stats{BySubject: []models.SubjectStats{}}
	bySubject := make(map[string]*models.SubjectStats)

	for _, a := range attempts {
		stats.Total++
		s, ok := bySubject[a.SubjectID]
		if !ok {
			s = &models.SubjectStats{SubjectID: a.SubjectID}
			bySubject[a.SubjectID] = s
		}
		s.Total++
		if a.IsCorrect {
			stats.Correct++
			s.Correct++
		}
	}
	stats.Incorrect = stats.Total - stats.Correct
	stats.Accuracy = percent(stats.Correct, stats.Total)

	for _, s := range bySubject {
		s.Accuracy = percent(s.Correct, s.Total)
		stats.BySubject = append(stats.BySubject, *s)
	}
	sort.Slice(stats.BySubject, func(i, j int) bool {
		return stats.BySubject[i].SubjectID < stats.BySubject[j].SubjectID
	})
	return stats
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
