// Package errs holds the tagged failures returned by entities, domain
// services and use cases. Every failure carries a Kind so the transport
// boundary can map it without inspecting messages.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindValidation               Kind = "VALIDATION_ERROR"
	KindNotFound                 Kind = "RESOURCE_NOT_FOUND"
	KindAlreadyExists            Kind = "RESOURCE_ALREADY_EXISTS"
	KindUnauthorized             Kind = "UNAUTHORIZED"
	KindAccountDeactivated       Kind = "ACCOUNT_DEACTIVATED"
	KindInvalidCredentials       Kind = "INVALID_CREDENTIALS"
	KindPostAlreadyPublished     Kind = "POST_ALREADY_PUBLISHED"
	KindDeletedCommentUpdate     Kind = "DELETED_COMMENT_UPDATE"
	KindCommentOnUnpublishedPost Kind = "COMMENT_ON_UNPUBLISHED_POST"
	KindInvalidState             Kind = "INVALID_STATE"
	KindInvalidToken             Kind = "INVALID_TOKEN"
	KindInternal                 Kind = "INTERNAL"
)

// AllKinds lists every Kind. Boundaries that translate errors check their
// tables against it at startup.
func AllKinds() []Kind {
	return []Kind{
		KindValidation,
		KindNotFound,
		KindAlreadyExists,
		KindUnauthorized,
		KindAccountDeactivated,
		KindInvalidCredentials,
		KindPostAlreadyPublished,
		KindDeletedCommentUpdate,
		KindCommentOnUnpublishedPost,
		KindInvalidState,
		KindInvalidToken,
		KindInternal,
	}
}

// Error is implemented by every failure in this package.
type Error interface {
	error
	Kind() Kind
	Details() map[string]any
}

// KindOf returns the Kind of err, or KindInternal when err is not tagged.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindInternal
}

type ResourceType string

const (
	ResourceMember  ResourceType = "MEMBER"
	ResourcePost    ResourceType = "POST"
	ResourceComment ResourceType = "COMMENT"
	ResourceAuth    ResourceType = "AUTH"
)

type Action string

const (
	ActionCreate    Action = "CREATE"
	ActionRead      Action = "READ"
	ActionUpdate    Action = "UPDATE"
	ActionDelete    Action = "DELETE"
	ActionPublish   Action = "PUBLISH"
	ActionUnpublish Action = "UNPUBLISH"
	ActionLogin     Action = "LOGIN"
	ActionRegister  Action = "REGISTER"
	ActionComment   Action = "COMMENT"
)

type Field string

const (
	FieldEmail    Field = "EMAIL"
	FieldPassword Field = "PASSWORD"
	FieldTitle    Field = "TITLE"
	FieldContent  Field = "CONTENT"
	FieldName     Field = "NAME"
	FieldTags     Field = "TAGS"
)

// ValidationError reports a value object or aggregate field that failed
// construction. Rules lists every violated rule, not only the first.
type ValidationError struct {
	Field    Field
	Received string
	Rules    []string
	Message  string
}

func Validation(field Field, received, message string, rules ...string) *ValidationError {
	return &ValidationError{Field: field, Received: received, Rules: rules, Message: message}
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Kind() Kind    { return KindValidation }
func (e *ValidationError) Details() map[string]any {
	d := map[string]any{"field": e.Field}
	if e.Field != FieldPassword {
		d["received"] = e.Received
	}
	if len(e.Rules) > 0 {
		d["rules"] = e.Rules
	}
	return d
}

type ResourceNotFoundError struct {
	Resource ResourceType
	ID       string
}

func NotFound(resource ResourceType, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: resource, ID: id}
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%s' not found", e.Resource, e.ID)
}
func (e *ResourceNotFoundError) Kind() Kind { return KindNotFound }
func (e *ResourceNotFoundError) Details() map[string]any {
	return map[string]any{"resource_type": e.Resource, "resource_id": e.ID}
}

type ResourceAlreadyExistsError struct {
	Resource   ResourceType
	Identifier string
}

func AlreadyExists(resource ResourceType, identifier string) *ResourceAlreadyExistsError {
	return &ResourceAlreadyExistsError{Resource: resource, Identifier: identifier}
}

func (e *ResourceAlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with identifier '%s' already exists", e.Resource, e.Identifier)
}
func (e *ResourceAlreadyExistsError) Kind() Kind { return KindAlreadyExists }
func (e *ResourceAlreadyExistsError) Details() map[string]any {
	return map[string]any{"resource_type": e.Resource, "identifier": e.Identifier}
}

// UnauthorizedError means the actor may not perform Action on the resource.
type UnauthorizedError struct {
	Action     Action
	Resource   ResourceType
	ResourceID string
	ActorID    string
}

func Unauthorized(action Action, resource ResourceType, resourceID, actorID string) *UnauthorizedError {
	return &UnauthorizedError{Action: action, Resource: resource, ResourceID: resourceID, ActorID: actorID}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("Not allowed to %s %s with id '%s'", strings.ToLower(string(e.Action)), e.Resource, e.ResourceID)
}
func (e *UnauthorizedError) Kind() Kind { return KindUnauthorized }
func (e *UnauthorizedError) Details() map[string]any {
	return map[string]any{
		"action":        e.Action,
		"resource_type": e.Resource,
		"resource_id":   e.ResourceID,
		"actor_id":      e.ActorID,
	}
}

type AccountDeactivatedError struct {
	Email string
}

func (e *AccountDeactivatedError) Error() string {
	return fmt.Sprintf("Account %s is deactivated", e.Email)
}
func (e *AccountDeactivatedError) Kind() Kind { return KindAccountDeactivated }
func (e *AccountDeactivatedError) Details() map[string]any {
	return map[string]any{"resource_type": ResourceMember}
}

// InvalidCredentialsError never says which half of the credentials was wrong.
type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string           { return "Invalid credentials provided" }
func (e *InvalidCredentialsError) Kind() Kind              { return KindInvalidCredentials }
func (e *InvalidCredentialsError) Details() map[string]any { return nil }

type PostAlreadyPublishedError struct {
	PostID string
}

func (e *PostAlreadyPublishedError) Error() string {
	return fmt.Sprintf("Post with id '%s' is already published", e.PostID)
}
func (e *PostAlreadyPublishedError) Kind() Kind { return KindPostAlreadyPublished }
func (e *PostAlreadyPublishedError) Details() map[string]any {
	return map[string]any{"resource_type": ResourcePost, "resource_id": e.PostID}
}

type DeletedCommentUpdateError struct {
	CommentID string
}

func (e *DeletedCommentUpdateError) Error() string {
	return fmt.Sprintf("Cannot update deleted comment with id '%s'", e.CommentID)
}
func (e *DeletedCommentUpdateError) Kind() Kind { return KindDeletedCommentUpdate }
func (e *DeletedCommentUpdateError) Details() map[string]any {
	return map[string]any{"resource_type": ResourceComment, "resource_id": e.CommentID}
}

type CommentOnUnpublishedPostError struct {
	PostID  string
	ActorID string
}

func (e *CommentOnUnpublishedPostError) Error() string {
	return fmt.Sprintf("Cannot comment on unpublished post with id '%s'", e.PostID)
}
func (e *CommentOnUnpublishedPostError) Kind() Kind { return KindCommentOnUnpublishedPost }
func (e *CommentOnUnpublishedPostError) Details() map[string]any {
	return map[string]any{
		"action":        ActionComment,
		"resource_type": ResourcePost,
		"resource_id":   e.PostID,
		"actor_id":      e.ActorID,
	}
}

// InvalidStateError rejects a transition the aggregate's lifecycle forbids,
// such as publishing or editing an archived post.
type InvalidStateError struct {
	Resource   ResourceType
	ResourceID string
	State      string
	Action     Action
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("Cannot %s %s with id '%s' in state %s",
		strings.ToLower(string(e.Action)), e.Resource, e.ResourceID, e.State)
}
func (e *InvalidStateError) Kind() Kind { return KindInvalidState }
func (e *InvalidStateError) Details() map[string]any {
	return map[string]any{
		"action":        e.Action,
		"resource_type": e.Resource,
		"resource_id":   e.ResourceID,
		"state":         e.State,
	}
}

// InvalidTokenError is returned for any refresh token that fails
// verification. It does not distinguish expired from forged tokens.
type InvalidTokenError struct{}

func (e *InvalidTokenError) Error() string           { return "Invalid or expired token" }
func (e *InvalidTokenError) Kind() Kind              { return KindInvalidToken }
func (e *InvalidTokenError) Details() map[string]any { return nil }

// InternalError wraps an adapter failure (storage, signing) so callers
// still receive a tagged value. The cause is kept for logs only.
type InternalError struct {
	Op  string
	Err error
}

func Internal(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}

func (e *InternalError) Error() string           { return "internal error during " + e.Op }
func (e *InternalError) Unwrap() error           { return e.Err }
func (e *InternalError) Kind() Kind              { return KindInternal }
func (e *InternalError) Details() map[string]any { return nil }

// Wrap returns err unchanged when it is already tagged, otherwise wraps it
// as an InternalError for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		return err
	}
	return Internal(op, err)
}
