package domain

// SortField values accepted by the records list endpoint.
const (
	SortByID      = "id"
	SortByFecha   = "fechaCreacion"
	SortByEnvases = "cantidadDeEnvasesProducidos"
	SortByHoras   = "horasTrabajadas"
)

const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// ValidSortBy reports whether f is one of the sortable columns.
func ValidSortBy(f string) bool {
	switch f {
	case SortByID, SortByFecha, SortByEnvases, SortByHoras:
		return true
	}
	return false
}

// CreateRegistroEnvase is the payload for registering a production batch.
type CreateRegistroEnvase struct {
	CantidadDeMaterialUsado     float64 `json:"cantidadDeMaterialUsado" validate:"required,gt=0"`
	CantidadDeEnvasesProducidos int     `json:"cantidadDeEnvasesProducidos" validate:"required,gt=0"`
	HorasTrabajadas             float64 `json:"horasTrabajadas" validate:"required,min=1"`
	FechaCreacion               string  `json:"fechaCreacion,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	IDOperario                  int     `json:"idOperario" validate:"required"`
	IDUser                      int     `json:"idUser" validate:"required"`
	IDProducto                  int     `json:"idProducto" validate:"required"`
	IDMaterial                  int     `json:"idMaterial" validate:"required"`
}

// RegistroEnvase is a stored production batch, with its expanded relations.
type RegistroEnvase struct {
	ID                          int     `json:"id"`
	CantidadDeMaterialUsado     float64 `json:"cantidadDeMaterialUsado"`
	CantidadDeEnvasesProducidos int     `json:"cantidadDeEnvasesProducidos"`
	HorasTrabajadas             float64 `json:"horasTrabajadas"`
	FechaCreacion               string  `json:"fechaCreacion"`
	IDOperario                  int     `json:"idOperario"`
	IDUser                      int     `json:"idUser"`
	IDProducto                  int     `json:"idProducto"`
	IDMaterial                  int     `json:"idMaterial"`
	CreatedAt                   string  `json:"createdAt"`
	UpdatedAt                   string  `json:"updatedAt"`

	Usuario  *RegistroUsuario  `json:"usuario,omitempty"`
	Operario *RegistroOperario `json:"operario,omitempty"`
	Producto *RegistroProducto `json:"producto,omitempty"`
	Material *RegistroMaterial `json:"material,omitempty"`
}

// RegistroUsuario is the user relation embedded in a record response.
type RegistroUsuario struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Activo   bool   `json:"activo"`
}

type RegistroOperario struct {
	ID            int    `json:"id"`
	AreaDeTrabajo string `json:"areaDeTrabajo"`
}

type RegistroProducto struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Capacidad string `json:"capacidad"`
	Color     string `json:"color"`
}

type RegistroMaterial struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Color  string `json:"color"`
}

// Pagination describes the list endpoint's page metadata.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// RegistrosPage is one page of records.
type RegistrosPage struct {
	Data       []RegistroEnvase `json:"data"`
	Pagination Pagination       `json:"pagination"`
}
