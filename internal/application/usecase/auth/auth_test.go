// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/expense-insights/backend/internal/application/adapter"
	"github.com/expense-insights/backend/internal/domain/entity"
	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

type fakeUserRepo struct {
	users []*entity.User
	err   error
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return domainerror.ErrEmailAlreadyExists
		}
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// fakePasswordService reverses nothing; hashes are "hashed:" + password.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokenService struct {
	refreshClaims *adapter.TokenClaims
	refreshErr    error
}

func (f *fakeTokenService) GenerateTokenPair(userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	return &adapter.TokenPair{
		AccessToken:  "access:" + userID.String(),
		RefreshToken: "refresh:" + userID.String(),
	}, nil
}

func (f *fakeTokenService) ValidateAccessToken(token string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTokenService) ValidateRefreshToken(token string) (*adapter.TokenClaims, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshClaims, nil
}

func TestRegisterUser(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := NewRegisterUserUseCase(repo, fakePasswordService{}, &fakeTokenService{})

	output, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    "Maria@Example.com",
		Name:     "Maria",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.User.Email != "maria@example.com" {
		t.Errorf("expected normalized email, got %s", output.User.Email)
	}
	if output.User.PasswordHash != "hashed:correct-horse" {
		t.Errorf("expected hashed password, got %s", output.User.PasswordHash)
	}
	if output.AccessToken == "" || output.RefreshToken == "" {
		t.Error("expected issued tokens")
	}
	if len(repo.users) != 1 {
		t.Errorf("expected 1 stored user, got %d", len(repo.users))
	}
}

func TestRegisterUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		pass    string
		wantErr error
	}{
		{name: "invalid email", email: "not-an-email", pass: "correct-horse", wantErr: domainerror.ErrInvalidEmail},
		{name: "short password", email: "maria@example.com", pass: "1234567", wantErr: domainerror.ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRegisterUserUseCase(&fakeUserRepo{}, fakePasswordService{}, &fakeTokenService{})

			_, err := uc.Execute(context.Background(), RegisterUserInput{
				Email:    tt.email,
				Name:     "Maria",
				Password: tt.pass,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{
		entity.NewUser("maria@example.com", "Maria", "hashed:x"),
	}}
	uc := NewRegisterUserUseCase(repo, fakePasswordService{}, &fakeTokenService{})

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    "maria@example.com",
		Name:     "Maria",
		Password: "correct-horse",
	})
	if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}

	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeEmailExists {
		t.Errorf("expected AUTH email exists code, got %v", err)
	}
}

func TestLoginUser(t *testing.T) {
	user := entity.NewUser("maria@example.com", "Maria", "hashed:correct-horse")
	repo := &fakeUserRepo{users: []*entity.User{user}}
	uc := NewLoginUserUseCase(repo, fakePasswordService{}, &fakeTokenService{})

	output, err := uc.Execute(context.Background(), LoginUserInput{
		Email:    " Maria@Example.com ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output.User.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, output.User.ID)
	}
	if output.AccessToken == "" || output.RefreshToken == "" {
		t.Error("expected issued tokens")
	}
}

func TestLoginUserInvalidCredentials(t *testing.T) {
	user := entity.NewUser("maria@example.com", "Maria", "hashed:correct-horse")
	repo := &fakeUserRepo{users: []*entity.User{user}}
	uc := NewLoginUserUseCase(repo, fakePasswordService{}, &fakeTokenService{})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "joao@example.com", password: "correct-horse"},
		{name: "wrong password", email: "maria@example.com", password: "wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), LoginUserInput{
				Email:    tt.email,
				Password: tt.password,
			})
			// Same error either way, so responses cannot enumerate emails.
			if !errors.Is(err, domainerror.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestRefreshToken(t *testing.T) {
	user := entity.NewUser("maria@example.com", "Maria", "hashed:x")
	repo := &fakeUserRepo{users: []*entity.User{user}}
	tokens := &fakeTokenService{refreshClaims: &adapter.TokenClaims{UserID: user.ID, Email: user.Email}}
	uc := NewRefreshTokenUseCase(repo, tokens)

	output, err := uc.Execute(context.Background(), RefreshTokenInput{RefreshToken: "refresh:old"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output.AccessToken == "" || output.RefreshToken == "" {
		t.Error("expected a fresh token pair")
	}
}

func TestRefreshTokenInvalid(t *testing.T) {
	tokenErr := domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid token", domainerror.ErrInvalidToken)
	uc := NewRefreshTokenUseCase(&fakeUserRepo{}, &fakeTokenService{refreshErr: tokenErr})

	_, err := uc.Execute(context.Background(), RefreshTokenInput{RefreshToken: "garbage"})
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshTokenDeletedUser(t *testing.T) {
	tokens := &fakeTokenService{refreshClaims: &adapter.TokenClaims{UserID: uuid.New(), Email: "gone@example.com"}}
	uc := NewRefreshTokenUseCase(&fakeUserRepo{}, tokens)

	_, err := uc.Execute(context.Background(), RefreshTokenInput{RefreshToken: "refresh:gone"})
	if !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for removed account, got %v", err)
	}
}
