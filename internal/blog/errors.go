package blog

import "errors"

// Sentinel errors returned by the services. Handlers map these onto HTTP
// status codes and `{"error": ...}` bodies.
var (
	// ErrPostNotFound indicates no post exists for the given id or slug.
	ErrPostNotFound = errors.New("post not found")

	// ErrCategoryNotFound indicates no category exists for the given id or slug.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrUserNotFound indicates the caller identity could not be resolved to a
	// user. On authenticated writes this is an invariant violation surfaced as
	// a typed error rather than a panic.
	ErrUserNotFound = errors.New("user not found")

	// ErrCategoryNameTaken indicates a category with the same name already exists.
	ErrCategoryNameTaken = errors.New("category with this name already exists")

	// ErrNotPostAuthor indicates a mutation was attempted by someone other
	// than the post's author.
	ErrNotPostAuthor = errors.New("only the author may modify this post")

	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email is already in use")

	// ErrInvalidCredentials indicates a failed login attempt. The message is
	// deliberately the same for an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
