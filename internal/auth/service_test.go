package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AvalonleFae/ezevent/config"
)

// --- Mocks ---

type mockRepo struct {
	users             map[string]*User
	roles             map[string]*UserRole
	organizerProfiles map[uint]*OrganizerProfile
	createdProfiles   []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		users: map[string]*User{},
		roles: map[string]*UserRole{
			"admin":       {ID: 1, RoleName: "admin"},
			"organizer":   {ID: 2, RoleName: "organizer", CanRegisterPublicly: true},
			"participant": {ID: 3, RoleName: "participant", CanRegisterPublicly: true},
		},
		organizerProfiles: map[uint]*OrganizerProfile{},
	}
}

func (m *mockRepo) Create(user *User) error {
	user.ID = uint(len(m.users) + 1)
	m.users[user.Email] = user
	return nil
}
func (m *mockRepo) FindByEmail(email string) (*User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRepo) FindByID(userID uint) (User, error) {
	for _, u := range m.users {
		if u.ID == userID {
			return *u, nil
		}
	}
	return User{}, gorm.ErrRecordNotFound
}
func (m *mockRepo) FindRoleByName(name string) (*UserRole, error) {
	if r, ok := m.roles[name]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRepo) GetPublicRoles() ([]UserRole, error) {
	var out []UserRole
	for _, r := range m.roles {
		if r.CanRegisterPublicly {
			out = append(out, *r)
		}
	}
	return out, nil
}
func (m *mockRepo) Update(user *User) error                        { return nil }
func (m *mockRepo) UpdateFCMToken(userID uint, token string) error { return nil }
func (m *mockRepo) CreateOrganizerProfile(p *OrganizerProfile) error {
	m.organizerProfiles[p.UserID] = p
	m.createdProfiles = append(m.createdProfiles, "organizer")
	return nil
}
func (m *mockRepo) FindOrganizerProfile(userID uint) (*OrganizerProfile, error) {
	if p, ok := m.organizerProfiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRepo) CreateParticipantProfile(p *ParticipantProfile) error {
	m.createdProfiles = append(m.createdProfiles, "participant")
	return nil
}
func (m *mockRepo) FindParticipantProfile(userID uint) (*ParticipantProfile, error) {
	return nil, gorm.ErrRecordNotFound
}

// --- Helpers ---

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	}
}

func registeredUser(t *testing.T, repo *mockRepo, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	u := &User{
		FullName:     "Test Student",
		Email:        "student@example.edu",
		PasswordHash: string(hash),
		RoleID:       3,
		Status:       "active",
	}
	assert.NoError(t, repo.Create(u))
	return u
}

// --- Tests ---

func TestRegister_OrganizerStartsPending(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testConfig())

	err := svc.Register(RegisterInput{
		FullName:     "Organizer One",
		Email:        "Org@Example.edu",
		Password:     "secret123",
		Role:         "organizer",
		Organization: "Robotics Club",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"organizer"}, repo.createdProfiles)

	// Email is normalized to lowercase
	user, err := repo.FindByEmail("org@example.edu")
	assert.NoError(t, err)

	profile, err := repo.FindOrganizerProfile(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, VerificationPending, profile.Verified)
}

func TestRegister_ParticipantProfileCreated(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testConfig())

	err := svc.Register(RegisterInput{
		FullName:    "Test Student",
		Email:       "student@example.edu",
		Password:    "secret123",
		Role:        "participant",
		Institution: "State University",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"participant"}, repo.createdProfiles)
}

func TestRegister_UnknownRole(t *testing.T) {
	svc := NewService(newMockRepo(), testConfig())

	err := svc.Register(RegisterInput{Email: "x@example.edu", Password: "pw", Role: "wizard"})

	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	repo := newMockRepo()
	registeredUser(t, repo, "secret123")
	svc := NewService(repo, testConfig())

	pair, user, err := svc.Login(LoginInput{Email: "Student@Example.edu", Password: "secret123"})

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "student@example.edu", user.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockRepo()
	registeredUser(t, repo, "secret123")
	svc := NewService(repo, testConfig())

	_, _, err := svc.Login(LoginInput{Email: "student@example.edu", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownAccount(t *testing.T) {
	svc := NewService(newMockRepo(), testConfig())

	_, _, err := svc.Login(LoginInput{Email: "nobody@example.edu", Password: "pw"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	repo := newMockRepo()
	registeredUser(t, repo, "secret123")
	svc := NewService(repo, testConfig())

	pair, _, err := svc.Login(LoginInput{Email: "student@example.edu", Password: "secret123"})
	assert.NoError(t, err)

	access, err := svc.Refresh(pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestRefresh_RejectsAccessTokenAsRefresh(t *testing.T) {
	repo := newMockRepo()
	registeredUser(t, repo, "secret123")
	svc := NewService(repo, testConfig())

	pair, _, err := svc.Login(LoginInput{Email: "student@example.edu", Password: "secret123"})
	assert.NoError(t, err)

	// Signed with the access secret, so refresh verification fails
	_, err = svc.Refresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestRequireVerifiedOrganizer(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testConfig())

	repo.organizerProfiles[7] = &OrganizerProfile{UserID: 7, Verified: VerificationPending}
	err := svc.RequireVerifiedOrganizer(7)
	assert.ErrorIs(t, err, ErrVerificationPending)
	assert.ErrorIs(t, err, ErrNotVerified)

	repo.organizerProfiles[8] = &OrganizerProfile{UserID: 8, Verified: VerificationDeclined}
	err = svc.RequireVerifiedOrganizer(8)
	assert.ErrorIs(t, err, ErrVerificationDeclined)
	assert.ErrorIs(t, err, ErrNotVerified)
	assert.NotErrorIs(t, err, ErrVerificationPending)

	repo.organizerProfiles[9] = &OrganizerProfile{UserID: 9, Verified: VerificationAccepted}
	assert.NoError(t, svc.RequireVerifiedOrganizer(9))
}

func TestGetPublicRoles_ExcludesAdmin(t *testing.T) {
	svc := NewService(newMockRepo(), testConfig())

	roles, err := svc.GetPublicRoles()
	assert.NoError(t, err)
	assert.Len(t, roles, 2)
	for _, r := range roles {
		assert.NotEqual(t, "admin", r.RoleName)
	}
}
