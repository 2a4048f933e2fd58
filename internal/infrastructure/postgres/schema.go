package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Bootstrap crea tablas, índices y productos de ejemplo si no existen.
func Bootstrap(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("bootstrap esquema: %w", err)
	}
	return nil
}
