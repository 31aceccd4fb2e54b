package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/pkg/auth"
	"github.com/tracechain/tracechain/pkg/cache"
)

var (
	// ErrInvalidCredentials covers both unknown emails and wrong
	// passwords so responses never leak which one failed.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrEmailTaken is returned when registering an address that already
	// has an account or belongs to a seed user.
	ErrEmailTaken = errors.New("auth: email already registered")
)

// profileTTL bounds how long an edited seed-user profile overlay lives in
// the cache before falling back to the canonical directory record.
const profileTTL = 30 * 24 * time.Hour

// AuthResult is what a successful login or registration returns: the
// resolved user, a token pair, and the dashboard the client should land
// on for the user's role.
type AuthResult struct {
	User         models.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	LandingPath  string      `json:"landingPath"`
}

// AuthService authenticates users and manages profiles. Registered
// accounts live in the database; the canonical seed users stay read-only
// in the directory, and their profile edits are overlaid from the cache
// key-value store.
type AuthService struct {
	dir   *repositories.Directory
	users *repositories.UserRepository
}

func NewAuthService(dir *repositories.Directory) *AuthService {
	return &AuthService{dir: dir, users: repositories.NewUserRepository()}
}

// Login verifies email+password against registered accounts and issues a
// token pair.
func (s *AuthService) Login(email, password string) (AuthResult, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Register creates a new account with a bcrypt-hashed password and logs
// it in. The email must not collide with an existing account or a seed
// user.
func (s *AuthService) Register(name, email, password string, role models.Role) (AuthResult, error) {
	if !role.Valid() || role == models.RoleAdmin {
		return AuthResult{}, fmt.Errorf("auth: cannot register role %q", role)
	}
	if _, err := s.users.FindByEmail(email); err == nil {
		return AuthResult{}, ErrEmailTaken
	}
	if _, ok := s.dir.UserByEmail(email); ok {
		return AuthResult{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user := models.User{
		ID:       newUserID(role),
		Name:     name,
		Role:     role,
		Email:    email,
		Password: hash,
	}
	if err := s.users.Create(&user); err != nil {
		return AuthResult{}, fmt.Errorf("auth: create user: %w", err)
	}
	return s.issue(user)
}

// Profile resolves a user by id: registered accounts first, then seed
// users with any cached profile edits overlaid.
func (s *AuthService) Profile(userID string) (models.User, bool) {
	if user, err := s.users.FindByID(userID); err == nil {
		return user, true
	}

	user, ok := s.dir.User(userID)
	if !ok {
		return models.User{}, false
	}
	var edited models.User
	if cache.Get(profileKey(userID), &edited) {
		return edited, true
	}
	return user, true
}

// ProfileUpdate is the set of fields a user may edit on their profile.
type ProfileUpdate struct {
	Name     string `json:"name"     validate:"required,min=2,max=255"`
	Avatar   string `json:"avatar"   validate:"nullable,url"`
	Location string `json:"location" validate:"nullable,max=255"`
	Company  string `json:"company"  validate:"nullable,max=255"`
}

// UpdateProfile applies upd to the user's profile. Registered accounts
// are written back to the database; seed users stay canonical in the
// directory and the edited copy is kept in the cache store instead.
func (s *AuthService) UpdateProfile(userID string, upd ProfileUpdate) (models.User, error) {
	apply := func(u *models.User) {
		u.Name = upd.Name
		u.Avatar = upd.Avatar
		u.Location = upd.Location
		u.Company = upd.Company
	}

	if user, err := s.users.FindByID(userID); err == nil {
		apply(&user)
		if err := s.users.Update(&user); err != nil {
			return models.User{}, fmt.Errorf("auth: update profile: %w", err)
		}
		return user, nil
	}

	user, ok := s.dir.User(userID)
	if !ok {
		return models.User{}, fmt.Errorf("auth: unknown user %q", userID)
	}
	apply(&user)
	if err := cache.Set(profileKey(userID), user, profileTTL); err != nil {
		return models.User{}, fmt.Errorf("auth: store profile: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return AuthResult{}, fmt.Errorf("auth: sign token: %w", err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return AuthResult{}, fmt.Errorf("auth: sign refresh token: %w", err)
	}
	return AuthResult{
		User:         user,
		Token:        token,
		RefreshToken: refresh,
		LandingPath:  user.Role.LandingPath(),
	}, nil
}

func profileKey(userID string) string { return "profile:" + userID }

func newUserID(role models.Role) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s-%s", role, hex.EncodeToString(b))
}
