// token emite un JWT firmado para un operador del inventario.
//
// Uso: go run ./cmd/token -user ana -role almacen -minutes 480
// Lee JWT_SECRET y JWT_ISSUER de la misma configuración que la API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dentalperu/inventario-dental/pkg/config"
	"github.com/dentalperu/inventario-dental/pkg/jwt"
)

func main() {
	user := flag.String("user", "", "identificador del operador")
	role := flag.String("role", jwt.RoleAlmacen, "rol: admin | almacen | vendedor")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "falta -user")
		os.Exit(2)
	}
	switch *role {
	case jwt.RoleAdmin, jwt.RoleAlmacen, jwt.RoleVendedor:
	default:
		fmt.Fprintf(os.Stderr, "rol desconocido: %s\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	exp := *minutes
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
