package serviceerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind - класс отказа, по нему вызывающий слой выбирает реакцию
// (http-статус, повтор, сообщение пользователю)
type Kind string

const (
	NotFound            Kind = "NOT_FOUND"
	InvalidState        Kind = "INVALID_STATE"
	AuthorizationDenied Kind = "AUTHORIZATION_DENIED"
	HierarchyViolation  Kind = "HIERARCHY_VIOLATION"
	DuplicateConstraint Kind = "DUPLICATE_CONSTRAINT"
	ValidationError     Kind = "VALIDATION_ERROR"
)

type serviceError struct {
	kind Kind
	msg  string
}

func (e *serviceError) Error() string {
	return e.msg
}

func New(kind Kind, msg string) error {
	return &serviceError{kind: kind, msg: msg}
}

func Errorf(kind Kind, format string, args ...interface{}) error {
	return &serviceError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// KindOf возвращает класс отказа с учетом оберток pkg/errors,
// пустой Kind для обычных ошибок
func KindOf(err error) Kind {
	var sErr *serviceError
	if errors.As(err, &sErr) {
		return sErr.kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
