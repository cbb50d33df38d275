// seedadmin crea el usuario administrador inicial; falla si el email ya existe.
//
// Uso: go run ./cmd/seedadmin -email admin@tienda.mx -password <pass> [-name Admin]
// Lee la conexión a la base de la misma configuración que el API (.env).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
	"github.com/zapasoft/calzado-api/internal/infrastructure/postgres"
	"github.com/zapasoft/calzado-api/pkg/config"
)

func main() {
	email := flag.String("email", "", "email del administrador")
	password := flag.String("password", "", "contraseña en claro (se guarda el hash bcrypt)")
	name := flag.String("name", "Administrador", "nombre para mostrar")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "uso: seedadmin -email <email> -password <pass> [-name <nombre>]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de contraseña: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        *email,
		PasswordHash: string(hash),
		Name:         *name,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	userRepo := postgres.NewUserRepository(pool)
	if err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			fmt.Fprintf(os.Stderr, "ya existe un usuario con email %s\n", *email)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "crear usuario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("administrador creado: %s (%s)\n", user.Email, user.ID)
}
