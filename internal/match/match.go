// Package match computes the display-only 0-100 job compatibility score.
package match

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/mentorhub/mentorhub/pkg/repository"
)

// MatchPercent scores skill overlap between a user's skills and a job's
// declared skills. A job skill counts as matched when it contains, or is
// contained in, any user skill, case-insensitively. Repeated job skills are
// counted as listed; either list being empty scores zero.
func MatchPercent(userSkills, jobSkills []string) int {
	if len(userSkills) == 0 || len(jobSkills) == 0 {
		return 0
	}

	lowered := make([]string, len(userSkills))
	for i, s := range userSkills {
		lowered[i] = strings.ToLower(s)
	}

	matching := 0
	for _, js := range jobSkills {
		j := strings.ToLower(js)
		for _, u := range lowered {
			if strings.Contains(u, j) || strings.Contains(j, u) {
				matching++
				break
			}
		}
	}

	return int(math.Round(float64(matching) / float64(len(jobSkills)) * 100))
}

// Scorer resolves a user's skills from the profile repository before scoring.
type Scorer struct {
	profiles repository.ProfileRepo
	logger   *slog.Logger
}

func NewScorer(pr repository.ProfileRepo, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{profiles: pr, logger: logger}
}

// Score never fails: a missing profile or a repository error scores zero, the
// error is only logged. The result is for sorting and display, nothing else.
func (s *Scorer) Score(ctx context.Context, userID int64, jobSkills []string) int {
	skills, err := s.profiles.UserSkills(ctx, userID)
	if err != nil {
		s.logger.Error("load user skills for match score", slog.Int64("user_id", userID), slog.Any("err", err))
		return 0
	}
	return MatchPercent(skills, jobSkills)
}
