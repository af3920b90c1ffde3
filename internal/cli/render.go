package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	labelStyle = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

// renderUser prints the profile card shown after login and by whoami.
func renderUser(u *domain.User) string {
	estado := "activo"
	if !u.Activo {
		estado = "inactivo"
	}

	out := titleStyle.Render(u.Nombre) + "\n"
	out += fmt.Sprintf("%s %s\n", labelStyle.Render("Email:"), u.Email)
	out += fmt.Sprintf("%s %s (%s)\n", labelStyle.Render("Cargo:"), u.Cargo, estado)
	if u.Telefono != "" {
		out += fmt.Sprintf("%s %s\n", labelStyle.Render("Teléfono:"), u.Telefono)
	}
	out += fmt.Sprintf("%s %s\n", labelStyle.Render("Permisos:"), domain.PermissionsDescription(u))
	return out
}

// renderCapabilities prints the capability checklist for whoami.
func renderCapabilities(u *domain.User) string {
	caps := []struct {
		name string
		ok   bool
	}{
		{"Crear registros", domain.CanCreateRecords(u)},
		{"Ver todos los registros", domain.CanViewAllRecords(u)},
		{"Ver registro por ID", domain.CanViewRecordByID(u)},
		{"Acceder a reportes", domain.CanAccessReports(u)},
		{"Administración", domain.IsAdmin(u)},
	}

	out := ""
	for _, c := range caps {
		mark := "✗"
		if c.ok {
			mark = "✓"
		}
		out += fmt.Sprintf("  %s %s\n", mark, c.name)
	}
	return out
}

// renderRecordsTable prints one page of registros.
func renderRecordsTable(page *domain.RegistrosPage) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headStyle
			}
			return cellStyle
		}).
		Headers("ID", "Fecha", "Envases", "Material (kg)", "Horas", "Usuario", "Producto")

	for _, r := range page.Data {
		usuario := strconv.Itoa(r.IDUser)
		if r.Usuario != nil {
			usuario = r.Usuario.Nombre
		}
		producto := strconv.Itoa(r.IDProducto)
		if r.Producto != nil {
			producto = r.Producto.Nombre
		}
		t.Row(
			strconv.Itoa(r.ID),
			r.FechaCreacion,
			strconv.Itoa(r.CantidadDeEnvasesProducidos),
			strconv.FormatFloat(r.CantidadDeMaterialUsado, 'f', -1, 64),
			strconv.FormatFloat(r.HorasTrabajadas, 'f', -1, 64),
			usuario,
			producto,
		)
	}

	p := page.Pagination
	footer := labelStyle.Render(fmt.Sprintf("página %d de %d · %d registros en total", p.Page, p.TotalPages, p.Total))
	return t.Render() + "\n" + footer
}
