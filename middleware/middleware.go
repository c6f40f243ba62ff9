// Package middleware validates JSON request bodies against a paranoia schema.
//
// ValidateBody wraps a net/http handler. The echo and gin subpackages adapt
// the same BodyValidator to those frameworks, so every transport answers a
// non-conforming body with the same 422 payload:
//
//	{"error":{"name":"ValidationError","message":"Validation failed","status":422,"data":[...]}}
package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	paranoia "github.com/emavok/paranoia"
	"github.com/emavok/paranoia/internal/engine"
	"github.com/emavok/paranoia/internal/logging"
)

// DefaultMaxBodyBytes bounds request bodies unless WithMaxBodyBytes says otherwise.
const DefaultMaxBodyBytes int64 = 1 << 20

// Error names used in payloads.
const (
	NameValidationError    = "ValidationError"
	NameBadRequestError    = "BadRequestError"
	NamePayloadTooLarge    = "PayloadTooLargeError"
	NameInternalError      = "InternalServerError"
	messageValidation      = "Validation failed"
	messageBadRequest      = "Malformed request"
	messagePayloadTooLarge = "Request body too large"
	messageInternal        = "Internal server error"
)

// APIError is the body of an error response.
type APIError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse wraps APIError under "error".
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ErrorPayload shapes validation errors for a 422 response.
func ErrorPayload(errs paranoia.ValidationErrors) ErrorResponse {
	if errs == nil {
		errs = paranoia.ValidationErrors{}
	}
	return ErrorResponse{Error: APIError{
		Name:    NameValidationError,
		Message: messageValidation,
		Status:  http.StatusUnprocessableEntity,
		Data:    errs,
	}}
}

// SetNoCache marks a response as not cacheable.
func SetNoCache(h http.Header) {
	h.Set("Cache-Control", "no-cache, must-revalidate, max-age=0")
	h.Set("Expires", "Thu, 01 Jan 1970 01:00:00 GMT")
	h.Set("Pragma", "no-cache")
}

// Rejection describes why a request body was refused.
type Rejection struct {
	Status int
	Body   ErrorResponse
	Cause  error
}

func (r *Rejection) Error() string {
	if r.Cause != nil {
		return fmt.Sprintf("%s: %v", r.Body.Error.Message, r.Cause)
	}
	return r.Body.Error.Message
}

func (r *Rejection) Unwrap() error { return r.Cause }

func reject(status int, name, msg string, cause error) *Rejection {
	return &Rejection{
		Status: status,
		Body:   ErrorResponse{Error: APIError{Name: name, Message: msg, Status: status}},
		Cause:  cause,
	}
}

// Option configures a BodyValidator.
type Option func(*BodyValidator)

// WithLogger sets the logger for rejected requests and recovered schema panics.
func WithLogger(l *slog.Logger) Option {
	return func(b *BodyValidator) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithValidator replaces the default permissive validator.
func WithValidator(v *paranoia.Validator) Option {
	return func(b *BodyValidator) {
		if v != nil {
			b.validator = v
		}
	}
}

// WithMaxBodyBytes bounds the body size; n <= 0 disables the limit.
func WithMaxBodyBytes(n int64) Option {
	return func(b *BodyValidator) { b.maxBytes = n }
}

// WithDuplicateKeys accepts objects that repeat a key; the last value wins.
func WithDuplicateKeys(allow bool) Option {
	return func(b *BodyValidator) { b.allowDuplicates = allow }
}

// BodyValidator decodes and validates request bodies against one schema. It
// is safe for concurrent use.
type BodyValidator struct {
	schema          *paranoia.Schema
	validator       *paranoia.Validator
	logger          *slog.Logger
	maxBytes        int64
	allowDuplicates bool
}

// NewBodyValidator panics when schema fails the configured validator's Check,
// so a bad schema stops the server at startup.
func NewBodyValidator(schema *paranoia.Schema, opts ...Option) *BodyValidator {
	b := &BodyValidator{
		schema:    schema,
		validator: paranoia.New(),
		logger:    logging.Discard(),
		maxBytes:  DefaultMaxBodyBytes,
	}
	for _, o := range opts {
		if o != nil {
			o(b)
		}
	}
	if err := b.validator.Check(schema); err != nil {
		panic(err)
	}
	return b
}

// Check reads the body of r and validates it. It returns the decoded value,
// or a Rejection ready to be written. An empty body is validated as nil.
func (b *BodyValidator) Check(r *http.Request) (any, *Rejection) {
	data, rej := b.read(r)
	if rej != nil {
		b.logger.DebugContext(r.Context(), "request body rejected", "path", r.URL.Path, "status", rej.Status, "error", rej.Cause)
		return nil, rej
	}
	var v any
	if len(bytes.TrimSpace(data)) > 0 {
		var err error
		v, err = engine.Decode(engine.NewBytes(data), engine.DecodeOptions{AllowDuplicates: b.allowDuplicates})
		if err != nil {
			b.logger.DebugContext(r.Context(), "malformed request body", "path", r.URL.Path, "error", err)
			return nil, reject(http.StatusBadRequest, NameBadRequestError, messageBadRequest, err)
		}
	}
	return b.validate(r, v)
}

func (b *BodyValidator) validate(r *http.Request, v any) (_ any, rej *Rejection) {
	defer func() {
		if p := recover(); p != nil {
			err, ok := p.(error)
			if !ok || !errors.Is(err, paranoia.ErrInvalidSchema) {
				panic(p)
			}
			b.logger.ErrorContext(r.Context(), "schema error during validation", "path", r.URL.Path, "error", err)
			rej = reject(http.StatusInternalServerError, NameInternalError, messageInternal, err)
		}
	}()
	errs := b.validator.Validate(b.schema, v)
	if paranoia.HasValidationErrors(errs) {
		b.logger.DebugContext(r.Context(), "request body failed validation", "path", r.URL.Path, "errors", len(errs))
		return nil, &Rejection{Status: http.StatusUnprocessableEntity, Body: ErrorPayload(errs), Cause: errs}
	}
	return v, nil
}

func (b *BodyValidator) read(r *http.Request) ([]byte, *Rejection) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	var src io.Reader = r.Body
	if b.maxBytes > 0 {
		src = io.LimitReader(r.Body, b.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, reject(http.StatusBadRequest, NameBadRequestError, messageBadRequest, err)
	}
	if b.maxBytes > 0 && int64(len(data)) > b.maxBytes {
		return nil, reject(http.StatusRequestEntityTooLarge, NamePayloadTooLarge, messagePayloadTooLarge, nil)
	}
	return data, nil
}

// ValidateBody returns net/http middleware that rejects bodies not conforming
// to schema and stores the decoded value in the request context.
func ValidateBody(schema *paranoia.Schema, opts ...Option) func(http.Handler) http.Handler {
	bv := NewBodyValidator(schema, opts...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, rej := bv.Check(r)
			if rej != nil {
				WriteRejection(w, rej)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), v)))
		})
	}
}

// WriteRejection writes rej as a JSON error response with no-cache headers.
func WriteRejection(w http.ResponseWriter, rej *Rejection) {
	h := w.Header()
	SetNoCache(h)
	h.Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(rej.Status)
	_ = json.NewEncoder(w).Encode(rej.Body)
}

type ctxKeyValue struct{}

// ContextWithValue attaches a validated body to ctx.
func ContextWithValue(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValue{}, validated{v})
}

// ValueFromContext returns the validated body stored by the middleware. The
// boolean is false when no middleware ran; the value may be nil for an empty
// body.
func ValueFromContext(ctx context.Context) (any, bool) {
	v, ok := ctx.Value(ctxKeyValue{}).(validated)
	return v.value, ok
}

type validated struct{ value any }
