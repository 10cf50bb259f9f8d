package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ventas/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.pool.Close()

		n, err := postgres.Migrate(cmd.Context(), e.pool, e.log.Component("migrate"))
		if err != nil {
			return err
		}
		cmd.Printf("migraciones aplicadas: %d\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
