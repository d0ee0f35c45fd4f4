// Package cv renders a plain-text CV document from a student's profile data.
package cv

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/mentorhub/mentorhub/pkg/models"
	"github.com/mentorhub/mentorhub/pkg/repository"
)

type Data struct {
	User           models.User
	Profile        models.Profile
	Skills         []string
	Qualifications []models.Qualification
	Activities     []models.StudentActivity
	GeneratedAt    string
}

var cvTemplate = template.Must(template.New("cv").Parse(`{{.User.Name}}
{{.User.Email}}
Generated {{.GeneratedAt}}

{{if .Profile.Bio}}ABOUT
{{.Profile.Bio}}

{{end}}{{if .Skills}}SKILLS
{{range .Skills}}  - {{.}}
{{end}}
{{end}}{{if .Qualifications}}QUALIFICATIONS
{{range .Qualifications}}  - {{.Title}}{{if .Issuer}}, {{.Issuer}}{{end}}{{if .Year}} ({{.Year}}){{end}} [{{.VerificationStatus}}]
{{end}}
{{end}}{{if .Activities}}ACTIVITIES
{{range .Activities}}  - {{.Activity}} [{{.VerificationStatus}}]
{{end}}{{end}}`))

type Generator struct {
	users    repository.UserRepo
	profiles repository.ProfileRepo
}

func NewGenerator(ur repository.UserRepo, pr repository.ProfileRepo) *Generator {
	return &Generator{users: ur, profiles: pr}
}

// Render assembles the user's CV as plain text.
func (g *Generator) Render(ctx context.Context, userID int64) (string, error) {
	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load user %d: %w", userID, err)
	}
	if user == nil {
		return "", fmt.Errorf("user %d not found", userID)
	}

	data := Data{User: *user, GeneratedAt: time.Now().UTC().Format("2006-01-02")}

	if p, err := g.profiles.GetByUserID(ctx, userID); err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	} else if p != nil {
		data.Profile = *p
	}

	if data.Skills, err = g.profiles.UserSkills(ctx, userID); err != nil {
		return "", fmt.Errorf("load skills: %w", err)
	}
	if data.Qualifications, err = g.profiles.ListQualifications(ctx, userID); err != nil {
		return "", fmt.Errorf("load qualifications: %w", err)
	}
	if data.Activities, err = g.profiles.ListActivities(ctx, userID, 50, 0); err != nil {
		return "", fmt.Errorf("load activities: %w", err)
	}

	var buf bytes.Buffer
	if err := cvTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render cv: %w", err)
	}
	return buf.String(), nil
}
