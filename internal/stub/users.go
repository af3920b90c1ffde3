package stub

import (
	"fmt"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

// DefaultPassword is shared by every seeded account. Printed at startup so
// developers do not have to go looking for it.
const DefaultPassword = "planta123"

type seededUser struct {
	user         domain.User
	passwordHash []byte
}

// userDirectory is the in-memory account table: one user per role.
type userDirectory struct {
	byEmail map[string]*seededUser
	byID    map[int]*seededUser
}

func seedUsers() (*userDirectory, error) {
	seeds := []domain.User{
		{ID: 1, Email: "operario@envaplast.test", Nombre: "Juan Pérez", Cargo: domain.CargoOperario, Telefono: "3001112233", Activo: true},
		{ID: 2, Email: "supervisora@envaplast.test", Nombre: "Marta Gómez", Cargo: domain.CargoSupervisor, Telefono: "3004445566", Activo: true},
		{ID: 3, Email: "gerente@envaplast.test", Nombre: "Carlos Ruiz", Cargo: domain.CargoGerente, Telefono: "3007778899", Activo: true},
		{ID: 4, Email: "admin@envaplast.test", Nombre: "Lucía Torres", Cargo: domain.CargoAdministrativo, Telefono: "3000001122", Activo: true},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}

	dir := &userDirectory{
		byEmail: make(map[string]*seededUser, len(seeds)),
		byID:    make(map[int]*seededUser, len(seeds)),
	}
	for _, u := range seeds {
		su := &seededUser{user: u, passwordHash: hash}
		dir.byEmail[u.Email] = su
		dir.byID[u.ID] = su
	}
	return dir, nil
}

// authenticate verifies email+password and returns a copy of the user.
// Returns nil when either is wrong; the handler turns that into a 401
// without distinguishing the two cases.
func (d *userDirectory) authenticate(email, password string) *domain.User {
	su, ok := d.byEmail[email]
	if !ok {
		return nil
	}
	if bcrypt.CompareHashAndPassword(su.passwordHash, []byte(password)) != nil {
		return nil
	}
	u := su.user
	return &u
}

func (d *userDirectory) lookup(id int) *domain.User {
	su, ok := d.byID[id]
	if !ok {
		return nil
	}
	u := su.user
	return &u
}

// emails lists the seeded logins for the startup banner.
func (d *userDirectory) emails() []string {
	out := make([]string, 0, len(d.byEmail))
	for email := range d.byEmail {
		out = append(out, email)
	}
	sort.Strings(out)
	return out
}
