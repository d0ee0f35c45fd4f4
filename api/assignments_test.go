package api_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAssignAndListMentorship(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)

	mentor := a.createUser(t, "Marcus", "marcus@example.com", "mentor")
	student := a.createUser(t, "Sam", "sam@example.com", "student")

	rr := a.do(t, http.MethodPost, "/v1/admin/mentorship", token, map[string]any{
		"mentor_id":  mentor,
		"student_id": student,
		"notes":      "initial pairing",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rr.Code, rr.Body.String())
	}

	rr = a.do(t, http.MethodGet, "/v1/admin/mentorship", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var list struct {
		Total int `json:"total"`
	}
	decodeBody(t, rr, &list)
	if list.Total != 1 {
		t.Fatalf("expected 1 assignment got %d", list.Total)
	}
}

func TestAssignUnknownUsers(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)
	student := a.createUser(t, "Sam", "s@example.com", "student")

	rr := a.do(t, http.MethodPost, "/v1/admin/mentorship", token, map[string]any{
		"mentor_id":  9999,
		"student_id": student,
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown mentor got %d", rr.Code)
	}
}

func TestAssignWrongRole(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)

	s1 := a.createUser(t, "Sam", "s1@example.com", "student")
	s2 := a.createUser(t, "Sid", "s2@example.com", "student")

	// a student cannot be a mentor
	rr := a.do(t, http.MethodPost, "/v1/admin/mentorship", token, map[string]any{
		"mentor_id":  s1,
		"student_id": s2,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestStudentsForMentorEndpoint(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)

	mentor := a.createUser(t, "Mona", "mona@example.com", "mentor")
	s1 := a.createUser(t, "Sam", "fs1@example.com", "student")
	s2 := a.createUser(t, "Sofia", "fs2@example.com", "student")

	for _, sid := range []int64{s1, s2} {
		rr := a.do(t, http.MethodPost, "/v1/admin/mentorship", token, map[string]any{
			"mentor_id":  mentor,
			"student_id": sid,
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("assign failed: %d", rr.Code)
		}
	}

	rr := a.do(t, http.MethodGet, fmt.Sprintf("/v1/admin/mentorship/students/%d", mentor), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var body struct {
		Count int `json:"count"`
		Items []struct {
			StudentID   int64  `json:"student_id"`
			StudentName string `json:"student_name"`
		} `json:"items"`
	}
	decodeBody(t, rr, &body)
	if body.Count != 2 || len(body.Items) != 2 {
		t.Fatalf("expected 2 students got %+v", body)
	}
	for _, item := range body.Items {
		if item.StudentName == "" {
			t.Fatalf("student name not resolved: %+v", item)
		}
	}
}

func TestMentorForStudentEndpoint(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)

	mentor := a.createUser(t, "Marcus", "mm@example.com", "mentor")
	student := a.createUser(t, "Sam", "ms@example.com", "student")

	// unassigned student resolves to a null mentor
	rr := a.do(t, http.MethodGet, fmt.Sprintf("/v1/admin/mentorship/mentor/%d", student), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var body map[string]any
	decodeBody(t, rr, &body)
	if body["mentor"] != nil {
		t.Fatalf("expected null mentor got %v", body["mentor"])
	}

	rr = a.do(t, http.MethodPost, "/v1/admin/mentorship", token, map[string]any{
		"mentor_id":  mentor,
		"student_id": student,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("assign failed: %d", rr.Code)
	}

	rr = a.do(t, http.MethodGet, fmt.Sprintf("/v1/admin/mentorship/mentor/%d", student), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	decodeBody(t, rr, &body)
	m, ok := body["mentor"].(map[string]any)
	if !ok {
		t.Fatalf("expected mentor object got %v", body["mentor"])
	}
	if m["name"] != "Marcus" {
		t.Fatalf("expected mentor Marcus got %v", m)
	}
}

func TestUnassignEndpoint(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)

	mentor := a.createUser(t, "Marcus", "unm@example.com", "mentor")
	student := a.createUser(t, "Sam", "uns@example.com", "student")

	rr := a.do(t, http.MethodPost, "/v1/admin/mentorship", token, map[string]any{
		"mentor_id":  mentor,
		"student_id": student,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("assign failed: %d", rr.Code)
	}

	rr = a.do(t, http.MethodDelete, fmt.Sprintf("/v1/admin/mentorship?student_id=%d&reason=moved+away", student), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	var body map[string]bool
	decodeBody(t, rr, &body)
	if !body["removed"] {
		t.Fatalf("expected removed=true got %v", body)
	}

	// repeat removal reports removed=false, still 200
	rr = a.do(t, http.MethodDelete, fmt.Sprintf("/v1/admin/mentorship?student_id=%d", student), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	decodeBody(t, rr, &body)
	if body["removed"] {
		t.Fatalf("expected removed=false got %v", body)
	}
}

func TestDeletingStudentClearsMentorship(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)

	mentor := a.createUser(t, "Marcus", "dcm@example.com", "mentor")
	student := a.createUser(t, "Sam", "dcs@example.com", "student")

	rr := a.do(t, http.MethodPost, "/v1/admin/mentorship", token, map[string]any{
		"mentor_id":  mentor,
		"student_id": student,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("assign failed: %d", rr.Code)
	}

	rr = a.do(t, http.MethodDelete, fmt.Sprintf("/v1/admin/users/%d", student), token, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d", rr.Code)
	}

	// the cascaded row must disappear from the lookup endpoints too, not just
	// from the assignment listing
	rr = a.do(t, http.MethodGet, fmt.Sprintf("/v1/admin/mentorship/mentor/%d", student), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("mentor lookup failed: %d", rr.Code)
	}
	var body map[string]any
	decodeBody(t, rr, &body)
	if body["mentor"] != nil {
		t.Fatalf("deleted student still has a mentor: %v", body["mentor"])
	}

	rr = a.do(t, http.MethodGet, fmt.Sprintf("/v1/admin/mentorship/students/%d", mentor), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("students lookup failed: %d", rr.Code)
	}
	var students struct {
		Count int `json:"count"`
	}
	decodeBody(t, rr, &students)
	if students.Count != 0 {
		t.Fatalf("mentor still lists %d students after delete", students.Count)
	}

	rr = a.do(t, http.MethodGet, "/v1/admin/mentorship", token, nil)
	var list struct {
		Total int `json:"total"`
	}
	decodeBody(t, rr, &list)
	if list.Total != 0 {
		t.Fatalf("expected empty assignment list got %d", list.Total)
	}
}

func TestUnassignRequiresStudentID(t *testing.T) {
	a := setupAPI(t)
	token := adminToken(t, a)

	rr := a.do(t, http.MethodDelete, "/v1/admin/mentorship", token, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}
