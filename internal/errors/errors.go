package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeVCS           ErrorType = "VCS"
	TypeI18n          ErrorType = "I18N"
	TypeRender        ErrorType = "RENDER"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if path, ok := e.Context["path"].(string); ok && path != "" {
			msg += fmt.Sprintf(" - %s", path)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors of the same type and message, so errors derived
// from a sentinel through WithError/WithContext still match it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Settings errors
var (
	ErrSettingsRead = NewAppError(TypeConfiguration, "failed to read settings file", nil).
			WithSuggestion("Check the file permissions of ~/.ghreadme/settings.json")

	ErrSettingsCorrupt = NewAppError(TypeConfiguration, "settings file is not valid JSON", nil).
				WithSuggestion("Fix the file by hand or delete it to start with defaults")

	ErrSettingsWrite = NewAppError(TypeConfiguration, "failed to write settings file", nil).
				WithSuggestion("Check that the settings directory is writable")

	ErrSettingsPath = NewAppError(TypeConfiguration, "settings file path is not defined", nil)

	ErrInvalidTheme = NewAppError(TypeConfiguration, "unsupported theme", nil).
			WithSuggestion("Use one of: light, dark")

	ErrInvalidLanguage = NewAppError(TypeConfiguration, "unsupported language", nil).
				WithSuggestion("Use one of: en, fr, es")

	ErrCredentialsMissing = NewAppError(TypeConfiguration, "username and token are both required", nil).
				WithSuggestion("Run: ghreadme login --username <user> --token <token>")

	ErrUsernameMissing = NewAppError(TypeConfiguration, "no username selected", nil).
				WithSuggestion("Pass --username or run: ghreadme login")

	ErrInvalidUsername = NewAppError(TypeConfiguration, "not a valid GitHub username", nil).
				WithSuggestion("Usernames contain letters, digits and single hyphens")

	ErrInvalidRepository = NewAppError(TypeConfiguration, "not a valid repository name", nil).
				WithSuggestion("Use the owner/repo form, for example: octocat/hello-world")
)

// GitHub errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens\nThen run: ghreadme login")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes before generating again")

	ErrUserNotFound = NewAppError(TypeVCS, "GitHub user not found", nil).
			WithSuggestion("Check the spelling of the username")

	ErrGitHubData = NewAppError(TypeVCS, "failed to fetch contribution data from GitHub", nil).
			WithSuggestion("Try again later or run with --debug for details")
)

// Localization errors
var (
	ErrLocaleLoad = NewAppError(TypeI18n, "failed to load language file", nil).
			WithSuggestion("Language files must be named active.<lang>.toml")
)

// Rendering and state errors
var (
	ErrRender = NewAppError(TypeRender, "failed to render README preview", nil)

	ErrNoResult = NewAppError(TypeInternal, "no contributions fetched yet", nil).
			WithSuggestion("Generate the README first: ghreadme generate")
)
