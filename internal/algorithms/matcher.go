package algorithms

import (
	"sort"
	"strings"

	"jobhub_backend/internal/models"
)

// SkillMatchScore counts how many of the worker's skills match the job's
// required skills. A skill matches when either string contains the other,
// case-insensitively. This is a deliberate keyword match, not a relevance
// model: a job with any overlap at all is a candidate.
func SkillMatchScore(job *models.Job, workerSkills []string) (int, []string) {
	required := job.GetRequiredSkills()
	if len(required) == 0 || len(workerSkills) == 0 {
		return 0, nil
	}

	score := 0
	var matched []string
	for _, skill := range workerSkills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if s == "" {
			continue
		}
		for _, req := range required {
			r := strings.ToLower(strings.TrimSpace(req))
			if r == "" {
				continue
			}
			if strings.Contains(r, s) || strings.Contains(s, r) {
				score++
				matched = append(matched, skill)
				break
			}
		}
	}
	return score, matched
}

// RankJobsBySkills orders jobs by descending skill match score. Jobs with
// equal scores keep their incoming order (newest first from the repository),
// so the ranking only ever promotes overlap, never invents relevance.
func RankJobsBySkills(jobs []models.Job, workerSkills []string) []models.Job {
	type scored struct {
		job   models.Job
		score int
	}

	ranked := make([]scored, 0, len(jobs))
	for _, job := range jobs {
		score, _ := SkillMatchScore(&job, workerSkills)
		ranked = append(ranked, scored{job: job, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]models.Job, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.job)
	}
	return out
}
