package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/repository/postgres"
	"github.com/studyhall/ai-tutor-api/internal/service"
	"github.com/studyhall/ai-tutor-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	courseService := service.NewCourseService(repos.Course)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("creates a course", func(t *testing.T) {
		course, err := courseService.Create(ctx, owner.ID, service.CourseInput{Name: "Linear Algebra"})
		require.NoError(t, err)
		assert.Equal(t, "Linear Algebra", course.Name)
		assert.Equal(t, owner.ID, course.UserID)
	})

	t.Run("duplicate name for same owner", func(t *testing.T) {
		_, err := courseService.Create(ctx, owner.ID, service.CourseInput{Name: "Linear Algebra"})
		assert.ErrorIs(t, err, domain.ErrDuplicateCourseName)
	})

	t.Run("same name allowed for different owner", func(t *testing.T) {
		_, err := courseService.Create(ctx, other.ID, service.CourseInput{Name: "Linear Algebra"})
		assert.NoError(t, err)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := courseService.Create(ctx, owner.ID, service.CourseInput{Name: ""})
		var vErr *service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestCourseService_Ownership(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	courseService := service.NewCourseService(repos.Course)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).Build(t, testDB.DB)

	t.Run("owner can read", func(t *testing.T) {
		got, err := courseService.Get(ctx, owner.ID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, course.ID, got.ID)
	})

	// A stranger's probe and a missing record must be indistinguishable.
	t.Run("stranger gets not found", func(t *testing.T) {
		_, err := courseService.Get(ctx, stranger.ID, course.ID)
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})

	t.Run("missing course gets not found", func(t *testing.T) {
		_, err := courseService.Get(ctx, owner.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		_, err := courseService.Update(ctx, stranger.ID, course.ID, service.CourseInput{Name: "Hijacked"})
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		err := courseService.Delete(ctx, stranger.ID, course.ID)
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})
}

func TestCourseService_DeleteCascades(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	courseService := service.NewCourseService(repos.Course)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).Build(t, testDB.DB)
	file := testutil.NewFileBuilder(course).Build(t, testDB.DB)
	session := testutil.NewSessionBuilder(owner, course).Build(t, testDB.DB)

	message := &domain.ChatMessage{
		ID:             uuid.New(),
		Role:           domain.ChatRoleUser,
		Message:        "what is a determinant?",
		TutorSessionID: session.ID,
		CourseID:       course.ID,
		UserID:         owner.ID,
	}
	require.NoError(t, testDB.DB.Create(message).Error)

	require.NoError(t, courseService.Delete(ctx, owner.ID, course.ID))

	var count int64
	testDB.DB.Model(&domain.File{}).Where("id = ?", file.ID).Count(&count)
	assert.Zero(t, count, "files should be removed with their course")

	testDB.DB.Model(&domain.TutorSession{}).Where("id = ?", session.ID).Count(&count)
	assert.Zero(t, count, "sessions should be removed with their course")

	testDB.DB.Model(&domain.ChatMessage{}).Where("id = ?", message.ID).Count(&count)
	assert.Zero(t, count, "messages should be removed with their course")
}
