package service_test

import (
	"context"
	"testing"

	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/repository/postgres"
	"github.com/studyhall/ai-tutor-api/internal/service"
	"github.com/studyhall/ai-tutor-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	tests := []struct {
		name       string
		input      service.RegisterInput
		setup      func()
		wantErr    error
		wantFields bool
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Email:    "student@example.com",
				Password: "Sup3rSecret!",
			},
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				Email:    "taken@example.com",
				Password: "Sup3rSecret!",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrDuplicateEmail,
		},
		{
			name: "invalid email",
			input: service.RegisterInput{
				Email:    "not-an-email",
				Password: "Sup3rSecret!",
			},
			wantFields: true,
		},
		{
			name: "password too short",
			input: service.RegisterInput{
				Email:    "student@example.com",
				Password: "Ab1!",
			},
			wantFields: true,
		},
		{
			name: "password without special character",
			input: service.RegisterInput{
				Email:    "student@example.com",
				Password: "Abcdefg123",
			},
			wantFields: true,
		},
		{
			name: "password without digit",
			input: service.RegisterInput{
				Email:    "student@example.com",
				Password: "Abcdefgh!!",
			},
			wantFields: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			user, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantFields {
				var vErr *service.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.NotEmpty(t, vErr.Fields)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Email, user.Email)
			assert.NotEqual(t, tt.input.Password, user.PasswordHash)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	_, password := testutil.NewUserBuilder().
		WithEmail("known@example.com").
		Build(t, testDB.DB)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := authService.Login(ctx, "known@example.com", password)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		user, err := authService.GetCurrentUser(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "known@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authService.Login(ctx, "known@example.com", "wrong-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := authService.Login(ctx, "nobody@example.com", password)
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("garbage token", func(t *testing.T) {
		_, err := authService.GetCurrentUser(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, domain.ErrCouldNotValidate)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		token, err := authService.Login(ctx, user.Email, password)
		require.NoError(t, err)

		require.NoError(t, authService.DeleteUser(ctx, user.ID))

		_, err = authService.GetCurrentUser(ctx, token)
		assert.ErrorIs(t, err, domain.ErrCouldNotValidate)
	})
}
