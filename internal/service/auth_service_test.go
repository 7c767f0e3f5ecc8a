package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/claims-service/internal/config"
	"github.com/spec-kit/claims-service/internal/domain"
	apperrors "github.com/spec-kit/claims-service/pkg/util"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = "user-" + strconv.Itoa(r.nextID)
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role, activeOnly bool) ([]domain.User, error) {
	out := make([]domain.User, 0)
	for _, user := range r.byEmail {
		if user.Role != role {
			continue
		}
		if activeOnly && !user.Active {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            4,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo())

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Email:     "  Customer@Test.com ",
		Password:  "hunter22",
		FirstName: "Bob",
		LastName:  "Customer",
		Role:      domain.RoleCustomer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "customer@test.com", user.Email)
	assert.True(t, user.Active)

	loggedIn, token, err := svc.Login(context.Background(), "customer@test.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "x@test.com",
		Password: "hunter22",
		Role:     domain.Role("superuser"),
	})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo())

	input := RegisterInput{Email: "dup@test.com", Password: "hunter22", Role: domain.RoleAgent}
	_, _, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), input)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestLoginFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "adjuster@test.com", Password: "hunter22", Role: domain.RoleAdjuster,
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "adjuster@test.com", "wrong")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	_, _, err = svc.Login(context.Background(), "nobody@test.com", "hunter22")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	stored := repo.byEmail["adjuster@test.com"]
	stored.Active = false
	_, _, err = svc.Login(context.Background(), "adjuster@test.com", "hunter22")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}
