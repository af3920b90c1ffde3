package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/envaplast/planta-cli/internal/core/domain"
	"github.com/envaplast/planta-cli/internal/core/ports"
)

var registrosCmd = &cobra.Command{
	Use:   "registros",
	Short: "Consultar y crear registros de envases",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var registrosListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listar registros de producción de envases",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		current.session.Bootstrap(ctx)

		user := current.session.User()
		if user == nil {
			return fmt.Errorf("debe iniciar sesión primero")
		}
		if !domain.CanViewAllRecords(user) {
			return fmt.Errorf("su cargo (%s) no permite listar todos los registros", user.Cargo)
		}

		q := ports.RegistrosQuery{}
		q.Page, _ = cmd.Flags().GetInt("page")
		q.Limit, _ = cmd.Flags().GetInt("limit")
		q.SortBy, _ = cmd.Flags().GetString("sort-by")
		q.SortOrder, _ = cmd.Flags().GetString("sort-order")
		q.UserID, _ = cmd.Flags().GetInt("user")
		q.OperarioID, _ = cmd.Flags().GetInt("operario")
		q.ProductoID, _ = cmd.Flags().GetInt("producto")

		if q.SortBy != "" && !domain.ValidSortBy(q.SortBy) {
			return fmt.Errorf("sort-by debe ser uno de: id, fechaCreacion, cantidadDeEnvasesProducidos, horasTrabajadas")
		}
		if q.SortOrder != "" && q.SortOrder != domain.SortAsc && q.SortOrder != domain.SortDesc {
			return fmt.Errorf("sort-order debe ser ASC o DESC")
		}

		page, err := current.records.List(ctx, q)
		if err != nil {
			return fmt.Errorf("no se pudieron listar los registros: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderRecordsTable(page))
		return nil
	},
}

var registrosGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Ver un registro por su ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("el id debe ser numérico")
		}

		ctx := cmd.Context()
		current.session.Bootstrap(ctx)

		user := current.session.User()
		if user == nil {
			return fmt.Errorf("debe iniciar sesión primero")
		}
		if !domain.CanViewRecordByID(user) {
			return fmt.Errorf("su cargo no permite consultar registros")
		}

		rec, err := current.records.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("no se pudo obtener el registro %d: %w", id, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderRecordsTable(&domain.RegistrosPage{
			Data:       []domain.RegistroEnvase{*rec},
			Pagination: domain.Pagination{Page: 1, Limit: 1, Total: 1, TotalPages: 1},
		}))
		return nil
	},
}

var registrosCrearCmd = &cobra.Command{
	Use:   "crear",
	Short: "Registrar un lote de envases producidos",
	Long: `Registra un lote de producción. Sin flags, pide los valores de forma
interactiva. El usuario del registro es el de la sesión actual.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		current.session.Bootstrap(ctx)

		user := current.session.User()
		if user == nil {
			return fmt.Errorf("debe iniciar sesión primero")
		}
		if !domain.CanCreateRecords(user) {
			return fmt.Errorf("su cargo (%s) no permite crear registros", user.Cargo)
		}

		req := domain.CreateRegistroEnvase{IDUser: user.ID}
		req.CantidadDeMaterialUsado, _ = cmd.Flags().GetFloat64("material")
		req.CantidadDeEnvasesProducidos, _ = cmd.Flags().GetInt("envases")
		req.HorasTrabajadas, _ = cmd.Flags().GetFloat64("horas")
		req.IDOperario, _ = cmd.Flags().GetInt("operario")
		req.IDProducto, _ = cmd.Flags().GetInt("producto")
		req.IDMaterial, _ = cmd.Flags().GetInt("material-id")
		req.FechaCreacion, _ = cmd.Flags().GetString("fecha")

		if req.CantidadDeEnvasesProducidos == 0 && req.CantidadDeMaterialUsado == 0 {
			if err := promptRegistro(&req); err != nil {
				return err
			}
		}

		if err := validateRegistro(req); err != nil {
			return err
		}

		created, err := current.records.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("no se pudo crear el registro: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", titleStyle.Render("Registro creado"), created.ID)
		return nil
	},
}

// promptRegistro collects the batch values interactively. Numeric fields go
// through string inputs with per-field validation, the way the mobile form
// validated before submitting.
func promptRegistro(req *domain.CreateRegistroEnvase) error {
	var material, envases, horas, operario, producto, materialID string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Cantidad de material usado (kg)").Value(&material).Validate(positiveFloat),
		huh.NewInput().Title("Cantidad de envases producidos").Value(&envases).Validate(positiveInt),
		huh.NewInput().Title("Horas trabajadas").Value(&horas).Validate(positiveFloat),
		huh.NewInput().Title("ID del operario").Value(&operario).Validate(positiveInt),
		huh.NewInput().Title("ID del producto").Value(&producto).Validate(positiveInt),
		huh.NewInput().Title("ID del material").Value(&materialID).Validate(positiveInt),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("entrada cancelada: %w", err)
	}

	req.CantidadDeMaterialUsado, _ = strconv.ParseFloat(material, 64)
	req.CantidadDeEnvasesProducidos, _ = strconv.Atoi(envases)
	req.HorasTrabajadas, _ = strconv.ParseFloat(horas, 64)
	req.IDOperario, _ = strconv.Atoi(operario)
	req.IDProducto, _ = strconv.Atoi(producto)
	req.IDMaterial, _ = strconv.Atoi(materialID)
	return nil
}

func positiveFloat(s string) error {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("debe ser un número mayor a 0")
	}
	return nil
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("debe ser un entero mayor a 0")
	}
	return nil
}

func init() {
	registrosListCmd.Flags().Int("page", 0, "página a consultar")
	registrosListCmd.Flags().Int("limit", 0, "registros por página")
	registrosListCmd.Flags().String("sort-by", "", "columna de orden: id, fechaCreacion, cantidadDeEnvasesProducidos, horasTrabajadas")
	registrosListCmd.Flags().String("sort-order", "", "ASC o DESC")
	registrosListCmd.Flags().Int("user", 0, "filtrar por id de usuario")
	registrosListCmd.Flags().Int("operario", 0, "filtrar por id de operario")
	registrosListCmd.Flags().Int("producto", 0, "filtrar por id de producto")

	registrosCrearCmd.Flags().Float64("material", 0, "cantidad de material usado (kg)")
	registrosCrearCmd.Flags().Int("envases", 0, "cantidad de envases producidos")
	registrosCrearCmd.Flags().Float64("horas", 0, "horas trabajadas")
	registrosCrearCmd.Flags().Int("operario", 0, "id del operario")
	registrosCrearCmd.Flags().Int("producto", 0, "id del producto")
	registrosCrearCmd.Flags().Int("material-id", 0, "id del material")
	registrosCrearCmd.Flags().String("fecha", "", "fecha de creación en formato ISO (opcional)")

	registrosCmd.AddCommand(registrosListCmd, registrosGetCmd, registrosCrearCmd)
	rootCmd.AddCommand(registrosCmd)
}
