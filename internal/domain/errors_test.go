package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dentalperu/inventario-dental/internal/domain"
)

func TestOpError_IsMatchesKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := domain.Storage("registrar movimiento", cause)

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
}

func TestStorage_NoReenvuelveOpError(t *testing.T) {
	inner := domain.Validation("registrar movimiento", "cantidad debe ser positiva")
	err := domain.Storage("otra op", inner)

	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Same(t, inner, err)
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{"validacion", domain.Validation("op", "x"), domain.KindValidation},
		{"no encontrado", domain.NotFound("op", "producto"), domain.KindNotFound},
		{"sentinel envuelto", fmt.Errorf("capa: %w", domain.ErrInvalidInput), domain.KindValidation},
		{"desconocido", errors.New("boom"), domain.KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.KindOf(tc.err))
		})
	}
}
