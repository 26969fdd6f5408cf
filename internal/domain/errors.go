package domain

import "errors"

// Ownership mismatches and missing rows share one error per entity so a
// caller cannot tell a foreign row from a nonexistent one.
var (
	ErrCourseNotFound       = errors.New("course not found or access denied")
	ErrFileNotFound         = errors.New("file not found or access denied")
	ErrTutorSessionNotFound = errors.New("tutor session not found or access denied")
	ErrChatMessageNotFound  = errors.New("chat message not found or access denied")
	ErrUserNotFound         = errors.New("user not found")
)

var (
	ErrCouldNotValidate = errors.New("could not validate credentials")
	ErrNoStoredToken    = errors.New("user has no stored tokens")
	ErrMissingRefresh   = errors.New("missing refresh_token and no existing token found")
)

var (
	ErrDuplicateEmail      = errors.New("email is already registered")
	ErrDuplicateCourseName = errors.New("course with this name already exists")
	ErrDuplicateFileName   = errors.New("file with this name already exists in the course")
)
