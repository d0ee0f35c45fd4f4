package repository

import (
	"context"

	"github.com/mentorhub/mentorhub/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, role, status string, limit, offset int) ([]models.User, error)
	CountUsers(ctx context.Context, role, status string) (int64, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type AssignmentRepo interface {
	ListAssignments(ctx context.Context) ([]models.Assignment, error)
	ListByMentor(ctx context.Context, mentorID int64) ([]models.Assignment, error)
	GetByStudent(ctx context.Context, studentID int64) (*models.Assignment, error)
	// Reassign removes any existing assignment for the student and inserts
	// the new one in a single transaction.
	Reassign(ctx context.Context, a *models.Assignment) error
	// Unassign deletes by student id alone; reports whether a row was removed.
	Unassign(ctx context.Context, studentID int64) (bool, error)
}

type VerificationRepo interface {
	CreateRequest(ctx context.Context, r *models.VerificationRequest) error
	GetRequest(ctx context.Context, id string) (*models.VerificationRequest, error)
	ListRequests(ctx context.Context, status string) ([]models.VerificationRequest, error)
	ListRequestsByEmail(ctx context.Context, email string) ([]models.VerificationRequest, error)
	HasPendingForEmail(ctx context.Context, email string) (bool, error)
	UpdateRequest(ctx context.Context, r *models.VerificationRequest) error
}

// MirrorRepo is the server-held replacement for the browser-local status
// mirror: a flat string-to-string view keyed by convention.
type MirrorRepo interface {
	GetKey(ctx context.Context, key string) (string, error)
	SetKey(ctx context.Context, key, value string) error
	DeleteKey(ctx context.Context, key string) error
	ListByPrefix(ctx context.Context, prefix string) (map[string]string, error)
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.Profile) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
	UserSkills(ctx context.Context, userID int64) ([]string, error)
	AddQualification(ctx context.Context, q *models.Qualification) (int64, error)
	ListQualifications(ctx context.Context, userID int64) ([]models.Qualification, error)
	AddActivity(ctx context.Context, a *models.StudentActivity) (int64, error)
	ListActivities(ctx context.Context, userID int64, limit, offset int) ([]models.StudentActivity, error)
}

type MessageRepo interface {
	CreateMessage(ctx context.Context, m *models.Message) error
	ListInbox(ctx context.Context, userID int64, limit, offset int) ([]models.Message, error)
	ListConversation(ctx context.Context, userA, userB int64, limit, offset int) ([]models.Message, error)
	MarkRead(ctx context.Context, id string, recipientID int64) (bool, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

type JobPostRepo interface {
	CreateJobPost(ctx context.Context, j *models.JobPost) (int64, error)
	ListJobPosts(ctx context.Context) ([]models.JobPost, error)
}
