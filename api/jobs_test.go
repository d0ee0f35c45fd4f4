package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/mentorhub/mentorhub/pkg/models"
)

func TestCreateJobRequiresAdmin(t *testing.T) {
	a := setupAPI(t)
	sid := a.createUser(t, "Sam", "sam@example.com", "student")

	rr := a.do(t, http.MethodPost, "/v1/admin/jobs", tokenFor(t, sid, "sam@example.com", "student"), map[string]any{
		"company": "Acme",
		"title":   "Tutor",
	})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rr.Code)
	}
}

func TestCreateAndListJobs(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)

	rr := a.do(t, http.MethodPost, "/v1/admin/jobs", token, map[string]any{
		"company": "Acme Learning",
		"title":   "Maths Tutor",
		"skills":  []string{"teaching", "mathematics"},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rr.Code, rr.Body.String())
	}

	rr = a.do(t, http.MethodGet, "/v1/jobs", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var body struct {
		Total int `json:"total"`
		Items []struct {
			Company    string `json:"company"`
			MatchScore int    `json:"match_score"`
		} `json:"items"`
	}
	decodeBody(t, rr, &body)
	if body.Total != 1 || body.Items[0].Company != "Acme Learning" {
		t.Fatalf("unexpected listing: %+v", body)
	}
	// no user_id means no scoring
	if body.Items[0].MatchScore != 0 {
		t.Fatalf("expected unscored listing got %d", body.Items[0].MatchScore)
	}
}

func TestCreateJobValidation(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)

	rr := a.do(t, http.MethodPost, "/v1/admin/jobs", token, map[string]any{"company": "Acme"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestListJobsScoredAndSorted(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)
	ctx := context.Background()

	sid := a.createUser(t, "Sam", "scored@example.com", "student")
	if _, err := a.repo.CreateProfile(ctx, &models.Profile{UserID: sid, Skills: "teaching,python"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	jobs := []struct {
		title  string
		skills []string
	}{
		{"No Match", []string{"welding"}},
		{"Full Match", []string{"teaching", "python"}},
		{"Half Match", []string{"teaching", "carpentry"}},
	}
	for _, j := range jobs {
		rr := a.do(t, http.MethodPost, "/v1/admin/jobs", token, map[string]any{
			"company": "Acme",
			"title":   j.title,
			"skills":  j.skills,
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("create %q failed: %d", j.title, rr.Code)
		}
	}

	rr := a.do(t, http.MethodGet, fmt.Sprintf("/v1/jobs?user_id=%d", sid), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var body struct {
		Items []struct {
			Title      string `json:"title"`
			MatchScore int    `json:"match_score"`
		} `json:"items"`
	}
	decodeBody(t, rr, &body)
	if len(body.Items) != 3 {
		t.Fatalf("expected 3 jobs got %d", len(body.Items))
	}

	// sorted best-first
	if body.Items[0].Title != "Full Match" || body.Items[0].MatchScore != 100 {
		t.Fatalf("expected Full Match first got %+v", body.Items[0])
	}
	if body.Items[1].Title != "Half Match" || body.Items[1].MatchScore != 50 {
		t.Fatalf("expected Half Match second got %+v", body.Items[1])
	}
	if body.Items[2].MatchScore != 0 {
		t.Fatalf("expected zero score last got %+v", body.Items[2])
	}
}
