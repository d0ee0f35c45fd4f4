package match_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mentorhub/mentorhub/internal/match"
	"github.com/mentorhub/mentorhub/pkg/repository/mock"
)

func TestMatchPercent(t *testing.T) {
	tests := []struct {
		name       string
		userSkills []string
		jobSkills  []string
		want       int
	}{
		{
			name:       "empty user skills",
			userSkills: nil,
			jobSkills:  []string{"teaching"},
			want:       0,
		},
		{
			name:       "empty job skills",
			userSkills: []string{"teaching"},
			jobSkills:  nil,
			want:       0,
		},
		{
			name:       "full overlap",
			userSkills: []string{"teaching", "mathematics"},
			jobSkills:  []string{"teaching", "mathematics"},
			want:       100,
		},
		{
			name:       "no overlap",
			userSkills: []string{"cooking"},
			jobSkills:  []string{"teaching", "mathematics"},
			want:       0,
		},
		{
			name:       "half overlap",
			userSkills: []string{"teaching"},
			jobSkills:  []string{"teaching", "mathematics"},
			want:       50,
		},
		{
			name:       "case insensitive",
			userSkills: []string{"Teaching"},
			jobSkills:  []string{"TEACHING"},
			want:       100,
		},
		{
			name:       "substring containment both directions",
			userSkills: []string{"math"},
			jobSkills:  []string{"mathematics", "applied math"},
			want:       100,
		},
		{
			name:       "rounding one of three",
			userSkills: []string{"go"},
			jobSkills:  []string{"golang", "rust", "python"},
			want:       33,
		},
		{
			name:       "rounding two of three",
			userSkills: []string{"golang", "rust"},
			jobSkills:  []string{"golang", "rust", "python"},
			want:       67,
		},
		{
			name:       "repeated job skills count each time",
			userSkills: []string{"teaching"},
			jobSkills:  []string{"teaching", "teaching"},
			want:       100,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := match.MatchPercent(tc.userSkills, tc.jobSkills)
			if got != tc.want {
				t.Fatalf("MatchPercent(%v, %v) = %d, want %d", tc.userSkills, tc.jobSkills, got, tc.want)
			}
		})
	}
}

func TestScorerResolvesSkills(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Profiles.SetSkills(1, []string{"teaching", "python"})

	s := match.NewScorer(mocks.Profiles, nil)

	if got := s.Score(context.Background(), 1, []string{"teaching", "python"}); got != 100 {
		t.Fatalf("expected 100 got %d", got)
	}
	// unknown user has no skills
	if got := s.Score(context.Background(), 2, []string{"teaching"}); got != 0 {
		t.Fatalf("expected 0 for unknown user got %d", got)
	}
}

func TestScorerErrorScoresZero(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.Profiles.SkillsErr = errors.New("db unavailable")

	s := match.NewScorer(mocks.Profiles, nil)
	if got := s.Score(context.Background(), 1, []string{"teaching"}); got != 0 {
		t.Fatalf("expected 0 on repository error got %d", got)
	}
}
