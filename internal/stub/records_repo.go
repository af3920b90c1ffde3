package stub

import (
	"sort"
	"sync"
	"time"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

// Fixed catalogues for the relations a record response embeds. The real
// backend joins these from its own tables; the stub only needs believable
// rows.
var (
	stubOperarios = map[int]domain.RegistroOperario{
		1: {ID: 1, AreaDeTrabajo: "Envases"},
		2: {ID: 2, AreaDeTrabajo: "Mallas"},
		3: {ID: 3, AreaDeTrabajo: "Pitillos"},
	}
	stubProductos = map[int]domain.RegistroProducto{
		1: {ID: 1, Nombre: "Envase 500ml", Capacidad: "500ml", Color: "Transparente"},
		2: {ID: 2, Nombre: "Envase 1L", Capacidad: "1L", Color: "Blanco"},
		3: {ID: 3, Nombre: "Envase 2L", Capacidad: "2L", Color: "Azul"},
	}
	stubMateriales = map[int]domain.RegistroMaterial{
		1: {ID: 1, Nombre: "PET reciclado", Color: "Transparente"},
		2: {ID: 2, Nombre: "Polipropileno", Color: "Blanco"},
	}
)

// recordsRepo is the in-memory registro store.
type recordsRepo struct {
	mu      sync.Mutex
	nextID  int
	records []domain.RegistroEnvase
	users   *userDirectory
	now     func() time.Time
}

func newRecordsRepo(users *userDirectory) *recordsRepo {
	r := &recordsRepo{nextID: 1, users: users, now: time.Now}
	r.seed()
	return r
}

// seed inserts a handful of records so a fresh stub has something to list.
func (r *recordsRepo) seed() {
	base := r.now().Add(-72 * time.Hour)
	seeds := []domain.CreateRegistroEnvase{
		{CantidadDeMaterialUsado: 120.5, CantidadDeEnvasesProducidos: 480, HorasTrabajadas: 8, IDOperario: 1, IDUser: 1, IDProducto: 1, IDMaterial: 1, FechaCreacion: base.Format(time.RFC3339)},
		{CantidadDeMaterialUsado: 200, CantidadDeEnvasesProducidos: 610, HorasTrabajadas: 10, IDOperario: 2, IDUser: 1, IDProducto: 2, IDMaterial: 2, FechaCreacion: base.Add(24 * time.Hour).Format(time.RFC3339)},
		{CantidadDeMaterialUsado: 95.25, CantidadDeEnvasesProducidos: 240, HorasTrabajadas: 6, IDOperario: 1, IDUser: 2, IDProducto: 3, IDMaterial: 1, FechaCreacion: base.Add(48 * time.Hour).Format(time.RFC3339)},
	}
	for _, s := range seeds {
		r.create(s)
	}
}

func (r *recordsRepo) create(req domain.CreateRegistroEnvase) *domain.RegistroEnvase {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC().Format(time.RFC3339)
	fecha := req.FechaCreacion
	if fecha == "" {
		fecha = now
	}

	rec := domain.RegistroEnvase{
		ID:                          r.nextID,
		CantidadDeMaterialUsado:     req.CantidadDeMaterialUsado,
		CantidadDeEnvasesProducidos: req.CantidadDeEnvasesProducidos,
		HorasTrabajadas:             req.HorasTrabajadas,
		FechaCreacion:               fecha,
		IDOperario:                  req.IDOperario,
		IDUser:                      req.IDUser,
		IDProducto:                  req.IDProducto,
		IDMaterial:                  req.IDMaterial,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
	r.nextID++

	if u := r.users.lookup(req.IDUser); u != nil {
		rec.Usuario = &domain.RegistroUsuario{ID: u.ID, Nombre: u.Nombre, Email: u.Email, Telefono: u.Telefono, Activo: u.Activo}
	}
	if op, ok := stubOperarios[req.IDOperario]; ok {
		rec.Operario = &op
	}
	if p, ok := stubProductos[req.IDProducto]; ok {
		rec.Producto = &p
	}
	if m, ok := stubMateriales[req.IDMaterial]; ok {
		rec.Material = &m
	}

	r.records = append(r.records, rec)
	return &rec
}

func (r *recordsRepo) get(id int) *domain.RegistroEnvase {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec
		}
	}
	return nil
}

type listFilter struct {
	page       int
	limit      int
	sortBy     string
	sortOrder  string
	userID     int
	operarioID int
	productoID int
}

func (r *recordsRepo) list(f listFilter) *domain.RegistrosPage {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.page <= 0 {
		f.page = 1
	}
	if f.limit <= 0 {
		f.limit = 10
	}
	if f.sortBy == "" {
		f.sortBy = domain.SortByID
	}
	if f.sortOrder == "" {
		f.sortOrder = domain.SortAsc
	}

	matched := make([]domain.RegistroEnvase, 0, len(r.records))
	for _, rec := range r.records {
		if f.userID > 0 && rec.IDUser != f.userID {
			continue
		}
		if f.operarioID > 0 && rec.IDOperario != f.operarioID {
			continue
		}
		if f.productoID > 0 && rec.IDProducto != f.productoID {
			continue
		}
		matched = append(matched, rec)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if f.sortOrder == domain.SortDesc {
			return lessBy(f.sortBy, matched[j], matched[i])
		}
		return lessBy(f.sortBy, matched[i], matched[j])
	})

	total := len(matched)
	totalPages := (total + f.limit - 1) / f.limit
	start := (f.page - 1) * f.limit
	if start > total {
		start = total
	}
	end := start + f.limit
	if end > total {
		end = total
	}

	return &domain.RegistrosPage{
		Data: matched[start:end],
		Pagination: domain.Pagination{
			Page:       f.page,
			Limit:      f.limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    f.page < totalPages,
			HasPrev:    f.page > 1 && total > 0,
		},
	}
}

func lessBy(field string, a, b domain.RegistroEnvase) bool {
	switch field {
	case domain.SortByFecha:
		return a.FechaCreacion < b.FechaCreacion
	case domain.SortByEnvases:
		return a.CantidadDeEnvasesProducidos < b.CantidadDeEnvasesProducidos
	case domain.SortByHoras:
		return a.HorasTrabajadas < b.HorasTrabajadas
	default:
		return a.ID < b.ID
	}
}
