package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/mentorhub/mentorhub/internal/match"
	"github.com/mentorhub/mentorhub/pkg/models"
	"github.com/mentorhub/mentorhub/pkg/repository"
)

type JobsHandler struct {
	jobs   repository.JobPostRepo
	scorer *match.Scorer
}

func NewJobsHandler(jr repository.JobPostRepo, scorer *match.Scorer) *JobsHandler {
	return &JobsHandler{jobs: jr, scorer: scorer}
}

type jobListing struct {
	models.JobPost
	MatchScore int `json:"match_score"`
}

// ListJobs returns every posting; when user_id is given each row carries the
// match score for that user and the list is sorted best-first. The score is
// display-only.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	posts, err := h.jobs.ListJobPosts(r.Context())
	if err != nil {
		writeError(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}

	items := make([]jobListing, 0, len(posts))
	userID, scored := queryUserID(r, "user_id")
	for _, p := range posts {
		item := jobListing{JobPost: p}
		if scored {
			item.MatchScore = h.scorer.Score(r.Context(), userID, splitSkills(p.Skills))
		}
		items = append(items, item)
	}
	if scored {
		sort.SliceStable(items, func(i, j int) bool { return items[i].MatchScore > items[j].MatchScore })
	}

	writeJSON(w, map[string]any{"items": items, "total": len(items)}, http.StatusOK)
}

type createJobRequest struct {
	Company string   `json:"company"`
	Title   string   `json:"title"`
	Skills  []string `json:"skills,omitempty"`
}

func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Company == "" || req.Title == "" {
		writeError(w, "company and title are required", http.StatusBadRequest)
		return
	}

	j := &models.JobPost{Company: req.Company, Title: req.Title, Skills: strings.Join(req.Skills, ",")}
	id, err := h.jobs.CreateJobPost(r.Context(), j)
	if err != nil {
		writeError(w, "failed to create job post", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]int64{"id": id}, http.StatusCreated)
}

func splitSkills(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
