package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrStorage          = errors.New("fallo de almacenamiento")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrNotifierDisabled = errors.New("notificaciones deshabilitadas")
)

// ErrorKind clasifica una falla para que el llamador distinga validación de almacenamiento.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNotFound
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrInvalidInput
	case KindNotFound:
		return ErrNotFound
	case KindStorage:
		return ErrStorage
	default:
		return nil
	}
}

// OpError es el error tipado que devuelven las operaciones de escritura.
// errors.Is funciona tanto contra el sentinel de su Kind como contra la causa.
type OpError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Validation construye un OpError de validación con un mensaje legible.
func Validation(op, msg string) error {
	return &OpError{Op: op, Kind: KindValidation, Err: errors.New(msg)}
}

// NotFound construye un OpError de recurso inexistente.
func NotFound(op, what string) error {
	return &OpError{Op: op, Kind: KindNotFound, Err: fmt.Errorf("%s no encontrado", what)}
}

// Storage envuelve una falla del ledger. Si err ya es un OpError se devuelve tal cual.
func Storage(op string, err error) error {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{Op: op, Kind: KindStorage, Err: err}
}

// KindOf devuelve la clasificación de err (KindUnknown si no es un OpError ni un sentinel conocido).
func KindOf(err error) ErrorKind {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStorage):
		return KindStorage
	}
	return KindUnknown
}
