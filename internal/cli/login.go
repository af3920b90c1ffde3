package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Iniciar sesión en el backend",
	Long: `Inicia sesión con email y contraseña. Sin flags, pide los datos de
forma interactiva (la contraseña no se muestra en pantalla).

La sesión queda guardada localmente hasta ejecutar "planta logout".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" || password == "" {
			if err := promptLogin(&email, &password); err != nil {
				return err
			}
		}

		if err := validateLogin(loginInput{Email: email, Password: password}); err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := current.session.Login(ctx, email, password); err != nil {
			return fmt.Errorf("no se pudo iniciar sesión: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("Sesión iniciada"))
		fmt.Fprint(cmd.OutOrStdout(), renderUser(current.session.User()))
		return nil
	},
}

func promptLogin(email, password *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("nombre@empresa.com").
			Value(email),
		huh.NewInput().
			Title("Contraseña").
			EchoMode(huh.EchoModePassword).
			Value(password),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("entrada cancelada: %w", err)
	}
	return nil
}

func init() {
	loginCmd.Flags().String("email", "", "email de la cuenta")
	loginCmd.Flags().String("password", "", "contraseña (preferir el modo interactivo)")
	rootCmd.AddCommand(loginCmd)
}
