package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/postgres"
)

const createAdminExample = `  invctl create-admin --email admin@empresa.co --password 'S3creto!!' --name "Administrador"`

var createAdminCmd = &cobra.Command{
	Use:     "create-admin",
	Short:   "Crea un usuario administrador",
	Example: createAdminExample,
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		if email == "" || len(password) < 8 {
			return errors.New("--email es requerido y --password debe tener al menos 8 caracteres")
		}

		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.pool.Close()

		uc := usecase.NewUserUseCase(postgres.NewUserRepository(e.pool))
		out, err := uc.Create(cmd.Context(), dto.CreateUserRequest{
			Email:    email,
			Password: password,
			Name:     name,
			Role:     "admin",
		})
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			cmd.Printf("el usuario %s ya existe\n", email)
			return nil
		}
		if err != nil {
			return err
		}
		cmd.Printf("administrador creado: %s (%s)\n", out.Email, out.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
	createAdminCmd.Flags().String("email", "", "Email del administrador")
	createAdminCmd.Flags().String("password", "", "Contraseña (mínimo 8 caracteres)")
	createAdminCmd.Flags().String("name", "Administrador", "Nombre visible")
}
