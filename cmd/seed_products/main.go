// seed_products carga un catálogo de productos (CSV o XLSX) en PostgreSQL.
//
// Uso: go run ./cmd/seed_products catalogo.csv
// Los CSV exportados desde Excel en ISO-8859-1 se decodifican automáticamente.
// Los códigos ya existentes se omiten.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dentalperu/inventario-dental/internal/application/catalog"
	infracatalog "github.com/dentalperu/inventario-dental/internal/infrastructure/catalog"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/excel"
	"github.com/dentalperu/inventario-dental/internal/infrastructure/postgres"
	"github.com/dentalperu/inventario-dental/pkg/config"
	"github.com/dentalperu/inventario-dental/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_products <catalogo.csv|catalogo.xlsx>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir catálogo")
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Bootstrap(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	importer := catalog.NewImportUseCase(postgres.NewProductRepository(pool)).
		WithReader(".csv", infracatalog.ReadCSV).
		WithReader(".xlsx", excel.ReadCatalog)

	res, err := importer.ImportFile(ctx, filepath.Base(path), f)
	if err != nil {
		log.Fatal().Err(err).Msg("importar catálogo")
	}
	for _, e := range res.Errors {
		log.Warn().Int("line", e.Line).Str("code", e.Code).Msg(e.Message)
	}
	log.Info().
		Int("created", res.Created).
		Int("skipped", len(res.Skipped)).
		Int("rejected", len(res.Errors)).
		Msg("catálogo importado")
}
