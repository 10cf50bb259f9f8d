// invctl tareas de operación: migraciones, carga del maestro de mercancías y alta de administradores.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ventas/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ventas/pkg/config"
	"github.com/jhoicas/inventario-ventas/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "invctl",
	Short: "Herramientas de operación de inventario-ventas",
	Long: `invctl lee la misma configuración que la API (variables de entorno o .env)
y trabaja directamente contra PostgreSQL.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env agrupa lo que necesitan los subcomandos.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "invctl",
	})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &env{cfg: cfg, log: log, pool: pool}, nil
}
