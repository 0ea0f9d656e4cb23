package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeVCS           ErrorType = "VCS"
	TypeWebhook       ErrorType = "WEBHOOK"
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
		if org, ok := e.Context["org"].(string); ok && org != "" {
			msg += fmt.Sprintf(" - org %s", org)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors with the same type and message, so sentinel values
// still compare equal after WithError/WithContext copies.
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

// Configuration errors
var (
	ErrTokenMissing = NewAppError(TypeConfiguration, "githubAccessToken not specified", nil).
			WithSuggestion("Create a token at https://github.com/settings/tokens and set github_access_token or GITHUB2RANGE_GITHUB_ACCESS_TOKEN")

	ErrWebhookMissing = NewAppError(TypeConfiguration, "rangeWebhook not specified", nil).
				WithSuggestion("Generate a webhook URL in the Range integration settings and set range_webhook")

	ErrNoUsers = NewAppError(TypeConfiguration, "no users configured", nil).
			WithSuggestion("Map GitHub logins to emails in the [users] table of your config file")

	ErrInvalidMaxAge = NewAppError(TypeConfiguration, "max_age must be greater than 0", nil)

	ErrConfigRead = NewAppError(TypeConfiguration, "failed to read configuration file", nil).
			WithSuggestion("Create one with: github2range config init")

	ErrConfigFormat = NewAppError(TypeConfiguration, "unsupported configuration file format", nil).
			WithSuggestion("Use a .toml, .yaml, .yml or .json file")
)

// GitHub/VCS specific errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Token needs the 'read:org' scope to list organizations and their events")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or lower max_age to fetch fewer pages")

	ErrGitHubHost = NewAppError(TypeVCS, "invalid GitHub host", nil).
			WithSuggestion("Use a host name such as api.github.com or github.example.com/api/v3")

	ErrListOrgs = NewAppError(TypeVCS, "failed to list organizations", nil)

	ErrListEvents = NewAppError(TypeVCS, "failed to list organization events", nil).
			WithSuggestion("You may need to lower max_age")
)

// Webhook errors
var (
	ErrEncodeSuggestion = NewAppError(TypeWebhook, "failed to encode suggestion", nil)

	ErrDelivery = NewAppError(TypeWebhook, "failed to deliver suggestion", nil).
			WithSuggestion("Check that range_webhook is reachable from this machine")
)
