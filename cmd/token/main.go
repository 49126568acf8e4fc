// token emite un JWT de operador para la API (la API no gestiona usuarios).
//
// Uso: go run ./cmd/token -sub operador-1 -role bodeguero [-exp 60]
// El secreto y el emisor se leen de la configuración (JWT_SECRET, JWT_ISSUER).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	pkgjwt "github.com/jhoicas/stock-ledger-api/pkg/jwt"
)

func main() {
	subject := flag.String("sub", "", "Requerido: identificador del operador")
	role := flag.String("role", entity.RoleVendedor, "Rol: admin | bodeguero | vendedor")
	expMinutes := flag.Int("exp", 0, "Minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if strings.TrimSpace(*subject) == "" {
		fmt.Fprintln(os.Stderr, "-sub es obligatorio")
		os.Exit(1)
	}
	if !entity.ValidRole(*role) {
		fmt.Fprintf(os.Stderr, "rol inválido: %q\n", *role)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	exp := cfg.JWT.Expiration
	if *expMinutes > 0 {
		exp = *expMinutes
	}

	tok, err := pkgjwt.Generate(cfg.JWT.Secret, *subject, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
