package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ventas/internal/infrastructure/csvimport"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/postgres"
)

var importGoodsCmd = &cobra.Command{
	Use:   "import-goods <archivo.csv>",
	Short: "Carga o actualiza mercancías desde un CSV",
	Long: `Columnas reconocidas (cabecera obligatoria): id|codigo, nombre, unidad, precio, iva, existencia.
El separador (',' o ';') se detecta de la cabecera. La existencia solo se usa al crear.`,
	Example: `  invctl import-goods maestro.csv --encoding latin1`,
	Args:    cobra.ExactArgs(1),
	RunE:    runImportGoods,
}

func init() {
	rootCmd.AddCommand(importGoodsCmd)
	importGoodsCmd.Flags().String("encoding", csvimport.EncodingUTF8, "utf-8 | latin1 | windows-1252")
	importGoodsCmd.Flags().Bool("dry-run", false, "Solo valida el archivo, no escribe")
}

func runImportGoods(cmd *cobra.Command, args []string) error {
	encoding, _ := cmd.Flags().GetString("encoding")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	if dryRun {
		goods, rejected, err := csvimport.ParseGoods(f, encoding)
		if err != nil {
			return err
		}
		for _, r := range rejected {
			cmd.PrintErrln(r.Error())
		}
		cmd.Printf("válidas: %d, descartadas: %d\n", len(goods), len(rejected))
		return nil
	}

	e, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer e.pool.Close()

	res, err := csvimport.Import(cmd.Context(), postgres.NewGoodsRepository(e.pool), f, encoding, e.log.Component("import"))
	if err != nil {
		return err
	}
	cmd.Printf("importadas: %d, descartadas: %d\n", res.Imported, len(res.Rejected))
	return nil
}
