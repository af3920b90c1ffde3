package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Cerrar la sesión actual",
	Long: `Cierra la sesión: notifica al backend y elimina las credenciales
guardadas. La limpieza local ocurre aunque el backend no responda.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		current.session.Bootstrap(ctx)

		if !current.session.IsAuthenticated() {
			// Still clear: a stored token without a usable session must not
			// survive an explicit logout.
			current.session.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "No había sesión activa.")
			return nil
		}

		nombre := current.session.User().Nombre
		current.session.Logout(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "Sesión de %s cerrada.\n", nombre)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Mostrar el usuario actual y sus permisos",
	RunE: func(cmd *cobra.Command, args []string) error {
		current.session.Bootstrap(cmd.Context())

		user := current.session.User()
		if user == nil {
			fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("No ha iniciado sesión. Use \"planta login\"."))
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), renderUser(user))
		fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("Capacidades:"))
		fmt.Fprint(cmd.OutOrStdout(), renderCapabilities(user))
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Renovar el token y actualizar el perfil",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		current.session.Bootstrap(ctx)

		if !current.session.IsAuthenticated() {
			return fmt.Errorf("no hay sesión activa para renovar")
		}

		if _, err := current.auth.Refresh(ctx); err != nil {
			return fmt.Errorf("no se pudo renovar el token: %w", err)
		}
		if err := current.session.RefreshUser(ctx); err != nil {
			// Token renewed but the profile fetch failed; the cached user
			// stays valid.
			current.log.Warn().Err(err).Msg("profile refresh failed after token renewal")
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Token renovado.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd, whoamiCmd, refreshCmd)
}
