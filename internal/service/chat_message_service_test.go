package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/gateway"
	"github.com/studyhall/ai-tutor-api/internal/repository/postgres"
	"github.com/studyhall/ai-tutor-api/internal/service"
	"github.com/studyhall/ai-tutor-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTutorLLM records what the tutor model was asked and returns a canned
// reply.
type fakeTutorLLM struct {
	reply        string
	lastMaterial string
	lastHistory  []gateway.ChatTurn
}

func (f *fakeTutorLLM) TutorReply(ctx context.Context, courseMaterial string, history []gateway.ChatTurn) string {
	f.lastMaterial = courseMaterial
	f.lastHistory = history
	if f.reply == "" {
		return gateway.FallbackReply
	}
	return f.reply
}

// fakeDrive serves file content from a map; unknown IDs fail.
type fakeDrive struct {
	content map[string]string
}

func (f *fakeDrive) ReadFile(ctx context.Context, userID uuid.UUID, fileID string) (*gateway.DriveFileContent, error) {
	text, ok := f.content[fileID]
	if !ok {
		return nil, errors.New("file unavailable")
	}
	return &gateway.DriveFileContent{Content: text}, nil
}

func newChatMessageService(t *testing.T, testDB *testutil.TestDB, llm *fakeTutorLLM, drive *fakeDrive) *service.ChatMessageService {
	t.Helper()
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewChatMessageService(repos.ChatMessage, repos.TutorSession, repos.File, testutil.TestCipher(t), llm, drive)
}

func TestChatMessageService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).WithName("Biology").Build(t, testDB.DB)
	testutil.NewFileBuilder(course).WithDriveFileID("drive-1").Build(t, testDB.DB)
	session := testutil.NewSessionBuilder(owner, course).WithTitle("Photosynthesis").Build(t, testDB.DB)

	llm := &fakeTutorLLM{reply: "Chlorophyll absorbs light."}
	drive := &fakeDrive{content: map[string]string{"drive-1": "Leaves are green because of chlorophyll."}}
	svc := newChatMessageService(t, testDB, llm, drive)

	view, err := svc.Create(ctx, owner.ID, service.ChatMessageInput{
		TutorSessionID: session.ID,
		Message:        "Why are leaves green?",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ChatRoleAssistant, view.Role)
	assert.Equal(t, "Chlorophyll absorbs light.", view.Message)
	assert.Equal(t, session.ID, view.TutorSessionID)
	require.NotNil(t, view.TutorSessionTitle)
	assert.Equal(t, "Photosynthesis", *view.TutorSessionTitle)
	assert.Equal(t, "Biology", view.CourseName)

	// The model sees the course material and the just-sent user turn.
	assert.Contains(t, llm.lastMaterial, "chlorophyll")
	require.NotEmpty(t, llm.lastHistory)
	last := llm.lastHistory[len(llm.lastHistory)-1]
	assert.Equal(t, "user", last.Role)
	assert.Equal(t, "Why are leaves green?", last.Content)

	// Both turns are persisted, encrypted at rest.
	var stored []*domain.ChatMessage
	require.NoError(t, testDB.DB.Where("tutor_session_id = ?", session.ID).Order("created_at").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, domain.ChatRoleUser, stored[0].Role)
	assert.NotEqual(t, "Why are leaves green?", stored[0].Message)
	assert.NotContains(t, stored[0].Message, "leaves")

	plain, err := testutil.TestCipher(t).Decrypt(stored[0].Message)
	require.NoError(t, err)
	assert.Equal(t, "Why are leaves green?", plain)
}

func TestChatMessageService_CreateDegradesOnGatewayFailure(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).Build(t, testDB.DB)
	testutil.NewFileBuilder(course).WithDriveFileID("gone").Build(t, testDB.DB)
	session := testutil.NewSessionBuilder(owner, course).Build(t, testDB.DB)

	llm := &fakeTutorLLM{} // falls back
	drive := &fakeDrive{}  // every read fails
	svc := newChatMessageService(t, testDB, llm, drive)

	view, err := svc.Create(ctx, owner.ID, service.ChatMessageInput{
		TutorSessionID: session.ID,
		Message:        "hello?",
	})
	require.NoError(t, err, "gateway failures must not fail the request")
	assert.Equal(t, gateway.FallbackReply, view.Message)
	assert.Empty(t, strings.TrimSpace(llm.lastMaterial), "unreadable files contribute no material")
}

func TestChatMessageService_Ownership(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).Build(t, testDB.DB)
	session := testutil.NewSessionBuilder(owner, course).Build(t, testDB.DB)

	svc := newChatMessageService(t, testDB, &fakeTutorLLM{}, &fakeDrive{})

	_, err := svc.Create(ctx, stranger.ID, service.ChatMessageInput{
		TutorSessionID: session.ID,
		Message:        "let me in",
	})
	assert.ErrorIs(t, err, domain.ErrTutorSessionNotFound)

	view, err := svc.Create(ctx, owner.ID, service.ChatMessageInput{
		TutorSessionID: session.ID,
		Message:        "legit question",
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, stranger.ID, view.ID)
	assert.ErrorIs(t, err, domain.ErrChatMessageNotFound)

	_, err = svc.ListForSession(ctx, stranger.ID, session.ID)
	assert.ErrorIs(t, err, domain.ErrTutorSessionNotFound)
}

func TestChatMessageService_LegacyPlaintextReadable(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).Build(t, testDB.DB)
	session := testutil.NewSessionBuilder(owner, course).Build(t, testDB.DB)

	// A row written before encryption was introduced.
	legacy := &domain.ChatMessage{
		ID:             uuid.New(),
		Role:           domain.ChatRoleUser,
		Message:        "stored in the clear",
		TutorSessionID: session.ID,
		CourseID:       course.ID,
		UserID:         owner.ID,
	}
	require.NoError(t, testDB.DB.Create(legacy).Error)

	svc := newChatMessageService(t, testDB, &fakeTutorLLM{}, &fakeDrive{})

	view, err := svc.Get(ctx, owner.ID, legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, "stored in the clear", view.Message)
}

func TestChatMessageService_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder(owner).Build(t, testDB.DB)
	session := testutil.NewSessionBuilder(owner, course).Build(t, testDB.DB)

	svc := newChatMessageService(t, testDB, &fakeTutorLLM{}, &fakeDrive{})

	view, err := svc.Create(ctx, owner.ID, service.ChatMessageInput{
		TutorSessionID: session.ID,
		Message:        "original",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner.ID, view.ID, service.ChatMessageUpdate{
		Role:    domain.ChatRoleAssistant,
		Message: "edited",
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Message)

	_, err = svc.Update(ctx, owner.ID, view.ID, service.ChatMessageUpdate{
		Role:    domain.ChatRole("narrator"),
		Message: "nope",
	})
	assert.ErrorIs(t, err, service.ErrInvalidChatRole)
}
