package provider

import (
	"context"
	"errors"
	"net/http"

	"github.com/tidwall/gjson"
)

// Error kinds. Match with errors.Is.
var (
	ErrAuth        = errors.New("provider: authentication failed")
	ErrRateLimit   = errors.New("provider: rate limit exceeded")
	ErrPolicy      = errors.New("provider: blocked by content policy")
	ErrUnavailable = errors.New("provider: service unavailable")
	ErrRequest     = errors.New("provider: request rejected")
	ErrEmptyReply  = errors.New("provider: empty reply")
	ErrOverBudget  = errors.New("provider: newest turn exceeds history budget")
)

// Error is a classified gateway failure.
type Error struct {
	Kind error
	// Status is the HTTP status when the provider answered, else 0.
	Status int
	// Message is a short human-readable explanation for the user.
	Message string
	// Detail is the provider's own error message, for logs.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Kind.Error() + ": " + e.Detail
	}
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Err.Error()
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string {
	var pe *Error
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return "Something went wrong while I was thinking. Please try again."
}

// KindOf names the error kind for telemetry and logs.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrRateLimit):
		return "rate_limit"
	case errors.Is(err, ErrPolicy):
		return "policy"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrRequest):
		return "request"
	case errors.Is(err, ErrEmptyReply):
		return "empty_reply"
	case errors.Is(err, ErrOverBudget):
		return "over_budget"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unknown"
	}
}

var userMessages = map[error]string{
	ErrAuth:        "I can't reach my language service because the API key was rejected.",
	ErrRateLimit:   "I'm getting a lot of requests right now. Please wait a moment and ask me again.",
	ErrPolicy:      "I'm not able to answer that one. Could we talk about something else?",
	ErrUnavailable: "I couldn't reach my language service just now. Please try again in a little while.",
	ErrRequest:     "Something went wrong while I was thinking. Please try again.",
	ErrEmptyReply:  "I didn't find the right words that time. Could you ask me again?",
}

func newError(kind error, status int, detail string, cause error) *Error {
	return &Error{Kind: kind, Status: status, Message: userMessages[kind], Detail: detail, Err: cause}
}

// classifyHTTP maps a provider HTTP failure onto an error kind. body is the
// raw JSON error payload; both Anthropic and Google nest the message under
// error.message.
func classifyHTTP(status int, body string, cause error) *Error {
	detail := gjson.Get(body, "error.message").String()
	errType := gjson.Get(body, "error.type").String()
	if errType == "" {
		errType = gjson.Get(body, "error.status").String()
	}
	return classify(status, errType, detail, cause)
}

// classify picks the kind from the HTTP status and the provider's error
// type (Anthropic "rate_limit_error", Google "RESOURCE_EXHAUSTED").
func classify(status int, errType, detail string, cause error) *Error {
	var kind error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden,
		errType == "authentication_error" || errType == "permission_error" ||
			errType == "UNAUTHENTICATED" || errType == "PERMISSION_DENIED":
		kind = ErrAuth
	case status == http.StatusTooManyRequests, errType == "rate_limit_error", errType == "RESOURCE_EXHAUSTED":
		kind = ErrRateLimit
	case status >= 500, errType == "overloaded_error", errType == "api_error":
		kind = ErrUnavailable
	default:
		kind = ErrRequest
	}
	return newError(kind, status, detail, cause)
}

// classifyTransport handles failures without an HTTP answer.
func classifyTransport(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return newError(ErrUnavailable, 0, "", err)
}
