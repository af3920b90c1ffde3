package stub

import (
	"testing"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

func testRepo(t *testing.T) *recordsRepo {
	t.Helper()
	users, err := seedUsers()
	if err != nil {
		t.Fatalf("seedUsers: %v", err)
	}
	return newRecordsRepo(users)
}

func TestRepo_FiltersByUser(t *testing.T) {
	repo := testRepo(t)

	page := repo.list(listFilter{userID: 1})
	if page.Pagination.Total != 2 {
		t.Fatalf("expected 2 seeded records for user 1, got %d", page.Pagination.Total)
	}
	for _, rec := range page.Data {
		if rec.IDUser != 1 {
			t.Fatalf("filter leaked record for user %d", rec.IDUser)
		}
	}
}

func TestRepo_PaginationBounds(t *testing.T) {
	repo := testRepo(t)

	page := repo.list(listFilter{page: 99, limit: 10})
	if len(page.Data) != 0 {
		t.Fatalf("expected empty page past the end, got %d records", len(page.Data))
	}
	if page.Pagination.HasNext {
		t.Fatalf("page past the end cannot have a next page")
	}
}

func TestRepo_SortByHorasDesc(t *testing.T) {
	repo := testRepo(t)

	page := repo.list(listFilter{sortBy: domain.SortByHoras, sortOrder: domain.SortDesc})
	for i := 1; i < len(page.Data); i++ {
		if page.Data[i-1].HorasTrabajadas < page.Data[i].HorasTrabajadas {
			t.Fatalf("records not sorted descending by horas")
		}
	}
}

func TestRepo_CreateExpandsRelations(t *testing.T) {
	repo := testRepo(t)

	rec := repo.create(domain.CreateRegistroEnvase{
		CantidadDeMaterialUsado:     10,
		CantidadDeEnvasesProducidos: 30,
		HorasTrabajadas:             2,
		IDOperario:                  2,
		IDUser:                      3,
		IDProducto:                  2,
		IDMaterial:                  2,
	})

	if rec.FechaCreacion == "" || rec.CreatedAt == "" {
		t.Fatalf("expected timestamps filled in: %+v", rec)
	}
	if rec.Usuario == nil || rec.Usuario.Nombre == "" {
		t.Fatalf("expected usuario relation, got %+v", rec.Usuario)
	}
	if rec.Operario == nil || rec.Operario.AreaDeTrabajo != "Mallas" {
		t.Fatalf("expected operario relation, got %+v", rec.Operario)
	}

	if got := repo.get(rec.ID); got == nil || got.ID != rec.ID {
		t.Fatalf("created record not retrievable")
	}
	if repo.get(9999) != nil {
		t.Fatalf("expected nil for unknown id")
	}
}
