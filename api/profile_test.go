package api_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/mentorhub/mentorhub/pkg/models"
)

func studentWithToken(t *testing.T, a *testAPI, name, email string) (int64, string) {
	t.Helper()
	id := a.createUser(t, name, email, "student")
	return id, tokenFor(t, id, email, "student")
}

func TestGetProfileAggregate(t *testing.T) {
	a := setupAPI(t)
	sid, tok := studentWithToken(t, a, "Sam", "sam@example.com")

	ctx := context.Background()
	if _, err := a.repo.CreateProfile(ctx, &models.Profile{UserID: sid, Bio: "maths tutor in training", Skills: "teaching,mathematics"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if _, err := a.repo.AddQualification(ctx, &models.Qualification{UserID: sid, Title: "BSc Mathematics", Year: 2023}); err != nil {
		t.Fatalf("add qualification: %v", err)
	}

	rr := a.do(t, http.MethodGet, fmt.Sprintf("/v1/student/%d/profile", sid), tok, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var body struct {
		User           map[string]any   `json:"user"`
		Profile        map[string]any   `json:"profile"`
		Qualifications []map[string]any `json:"qualifications"`
		Activities     []map[string]any `json:"activities"`
	}
	decodeBody(t, rr, &body)
	if body.User["email"] != "sam@example.com" {
		t.Fatalf("unexpected user: %v", body.User)
	}
	if body.Profile["bio"] != "maths tutor in training" {
		t.Fatalf("unexpected profile: %v", body.Profile)
	}
	if len(body.Qualifications) != 1 {
		t.Fatalf("expected 1 qualification got %d", len(body.Qualifications))
	}
	if body.Activities == nil {
		t.Fatalf("activities must be an empty list, not null")
	}
}

func TestUpdateProfileCreatesRowOnDemand(t *testing.T) {
	a := setupAPI(t)
	sid, tok := studentWithToken(t, a, "Sofia", "sofia@example.com")

	rr := a.do(t, http.MethodPut, fmt.Sprintf("/v1/student/%d/profile", sid), tok, map[string]any{
		"bio":    "aspiring teacher",
		"skills": []string{"teaching", " mathematics ", ""},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	p, err := a.repo.GetByUserID(context.Background(), sid)
	if err != nil || p == nil {
		t.Fatalf("profile missing: %v", err)
	}
	if p.Bio != "aspiring teacher" {
		t.Fatalf("bio not saved: %#v", p)
	}
	if p.Skills != "teaching,mathematics" {
		t.Fatalf("skills not normalized: %q", p.Skills)
	}
}

func TestAddQualificationEndpoint(t *testing.T) {
	a := setupAPI(t)
	sid, tok := studentWithToken(t, a, "Stan", "stan@example.com")

	rr := a.do(t, http.MethodPost, fmt.Sprintf("/v1/student/%d/qualifications", sid), tok, map[string]any{
		"title":  "Teaching Certificate",
		"issuer": "City College",
		"year":   2024,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rr.Code, rr.Body.String())
	}

	quals, err := a.repo.ListQualifications(context.Background(), sid)
	if err != nil {
		t.Fatalf("list qualifications: %v", err)
	}
	if len(quals) != 1 || quals[0].Title != "Teaching Certificate" {
		t.Fatalf("unexpected qualifications: %#v", quals)
	}
	if quals[0].VerificationStatus != models.VerificationNone {
		t.Fatalf("new qualification must start unverified got %q", quals[0].VerificationStatus)
	}
}

func TestAddActivityLimits(t *testing.T) {
	a := setupAPI(t)
	sid, tok := studentWithToken(t, a, "Ada", "ada@example.com")

	rr := a.do(t, http.MethodPost, fmt.Sprintf("/v1/student/%d/activities", sid), tok, map[string]string{
		"activity": "Organized a peer study group",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rr.Code, rr.Body.String())
	}

	// blank after trimming
	rr = a.do(t, http.MethodPost, fmt.Sprintf("/v1/student/%d/activities", sid), tok, map[string]string{
		"activity": "   ",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank activity got %d", rr.Code)
	}

	// over the length cap
	rr = a.do(t, http.MethodPost, fmt.Sprintf("/v1/student/%d/activities", sid), tok, map[string]string{
		"activity": strings.Repeat("x", 2001),
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized activity got %d", rr.Code)
	}
}

func TestGetCVEndpoint(t *testing.T) {
	a := setupAPI(t)
	sid, tok := studentWithToken(t, a, "Sam Student", "cv@example.com")

	if _, err := a.repo.CreateProfile(context.Background(), &models.Profile{UserID: sid, Bio: "bio line", Skills: "teaching"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	rr := a.do(t, http.MethodGet, fmt.Sprintf("/v1/student/%d/cv", sid), tok, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain got %q", ct)
	}
	out := rr.Body.String()
	if !strings.Contains(out, "Sam Student") || !strings.Contains(out, "SKILLS") {
		t.Fatalf("unexpected cv body:\n%s", out)
	}
}

func TestProfileUnknownUser(t *testing.T) {
	a := setupAPI(t)
	_, tok := studentWithToken(t, a, "Real", "real@example.com")

	rr := a.do(t, http.MethodGet, "/v1/student/9999/profile", tok, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}
