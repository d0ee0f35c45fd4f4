// Package mock provides small in-memory repository doubles for tests that do
// not need a real database.
package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/mentorhub/mentorhub/pkg/models"
)

type Mocks struct {
	Users    *UserRepo
	Profiles *ProfileRepo
	Mirror   *MirrorRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users:    &UserRepo{byID: make(map[int64]models.User)},
		Profiles: &ProfileRepo{skills: make(map[int64][]string)},
		Mirror:   &MirrorRepo{data: make(map[string]string)},
	}
}

type UserRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.User

	CreateErr error
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = m.nextID
	m.byID[u.ID] = *u
	return u.ID, nil
}

func (m *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) ListUsers(ctx context.Context, role, status string, limit, offset int) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.byID {
		if (role == "" || u.Role == role) && (status == "" || u.Status == status) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *UserRepo) CountUsers(ctx context.Context, role, status string) (int64, error) {
	users, _ := m.ListUsers(ctx, role, status, 0, 0)
	return int64(len(users)), nil
}

func (m *UserRepo) UpdateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = *u
	return nil
}

func (m *UserRepo) DeleteUser(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

// ProfileRepo only implements the skill lookup the match scorer needs; the
// remaining methods are inert.
type ProfileRepo struct {
	mu     sync.Mutex
	skills map[int64][]string

	SkillsErr error
}

func (m *ProfileRepo) SetSkills(userID int64, skills []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skills[userID] = skills
}

func (m *ProfileRepo) UserSkills(ctx context.Context, userID int64) ([]string, error) {
	if m.SkillsErr != nil {
		return nil, m.SkillsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.skills[userID], nil
}

func (m *ProfileRepo) CreateProfile(ctx context.Context, p *models.Profile) (int64, error) {
	return 1, nil
}

func (m *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	return nil, nil
}

func (m *ProfileRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	return nil
}

func (m *ProfileRepo) AddQualification(ctx context.Context, q *models.Qualification) (int64, error) {
	return 1, nil
}

func (m *ProfileRepo) ListQualifications(ctx context.Context, userID int64) ([]models.Qualification, error) {
	return nil, nil
}

func (m *ProfileRepo) AddActivity(ctx context.Context, a *models.StudentActivity) (int64, error) {
	return 1, nil
}

func (m *ProfileRepo) ListActivities(ctx context.Context, userID int64, limit, offset int) ([]models.StudentActivity, error) {
	return nil, nil
}

type MirrorRepo struct {
	mu   sync.Mutex
	data map[string]string

	SetErr error
}

func (m *MirrorRepo) GetKey(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *MirrorRepo) SetKey(ctx context.Context, key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MirrorRepo) DeleteKey(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MirrorRepo) ListByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string)
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}
