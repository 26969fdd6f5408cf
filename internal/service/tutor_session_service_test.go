package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/repository/postgres"
	"github.com/studyhall/ai-tutor-api/internal/service"
	"github.com/studyhall/ai-tutor-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorSessionService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewTutorSessionService(repos.TutorSession, repos.Course)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).Build(t, testDB.DB)

	t.Run("creates an open session", func(t *testing.T) {
		title := "Exam prep"
		session, err := svc.Create(ctx, owner.ID, service.TutorSessionInput{
			CourseID: course.ID,
			Title:    &title,
		})
		require.NoError(t, err)
		assert.Nil(t, session.EndedAt)
		assert.Equal(t, course.ID, session.CourseID)
	})

	t.Run("untitled session allowed", func(t *testing.T) {
		session, err := svc.Create(ctx, owner.ID, service.TutorSessionInput{CourseID: course.ID})
		require.NoError(t, err)
		assert.Nil(t, session.Title)
	})

	t.Run("stranger cannot attach to the course", func(t *testing.T) {
		_, err := svc.Create(ctx, stranger.ID, service.TutorSessionInput{CourseID: course.ID})
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})

	t.Run("missing course", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, service.TutorSessionInput{CourseID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})
}

func TestTutorSessionService_End(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewTutorSessionService(repos.TutorSession, repos.Course)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).Build(t, testDB.DB)
	session := testutil.NewSessionBuilder(owner, course).Build(t, testDB.DB)

	ended, err := svc.End(ctx, owner.ID, session.ID)
	require.NoError(t, err)
	require.NotNil(t, ended.EndedAt)
	firstEnd := *ended.EndedAt

	// Ending again keeps the original end time. The reloaded timestamp is
	// microsecond-truncated by the database.
	again, err := svc.End(ctx, owner.ID, session.ID)
	require.NoError(t, err)
	require.NotNil(t, again.EndedAt)
	assert.WithinDuration(t, firstEnd, *again.EndedAt, time.Millisecond)
}

func TestTutorSessionService_UpdateTitle(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	svc := service.NewTutorSessionService(repos.TutorSession, repos.Course)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).Build(t, testDB.DB)
	session := testutil.NewSessionBuilder(owner, course).Build(t, testDB.DB)

	updated, err := svc.UpdateTitle(ctx, owner.ID, session.ID, "Renamed")
	require.NoError(t, err)
	require.NotNil(t, updated.Title)
	assert.Equal(t, "Renamed", *updated.Title)

	_, err = svc.UpdateTitle(ctx, stranger.ID, session.ID, "Hijacked")
	assert.ErrorIs(t, err, domain.ErrTutorSessionNotFound)
}
