package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/envaplast/planta-cli/internal/core/domain"
	"github.com/envaplast/planta-cli/internal/core/ports"
)

func TestList_EncodesQueryParams(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_ = json.NewEncoder(w).Encode(domain.RegistrosPage{})
	}))
	t.Cleanup(srv.Close)

	store := &memStore{token: "tok1"}
	svc := NewRecordsService(newTestClient(srv.URL, store))

	_, err := svc.List(context.Background(), ports.RegistrosQuery{
		Page:      2,
		Limit:     25,
		SortBy:    domain.SortByFecha,
		SortOrder: domain.SortDesc,
		UserID:    7,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := map[string]string{
		"page":      "2",
		"limit":     "25",
		"sortBy":    "fechaCreacion",
		"sortOrder": "DESC",
		"userId":    "7",
	}
	for k, v := range want {
		if got.Get(k) != v {
			t.Errorf("query %s = %q, want %q", k, got.Get(k), v)
		}
	}
	for _, absent := range []string{"operarioId", "productoId"} {
		if got.Has(absent) {
			t.Errorf("zero-valued filter %s must be omitted", absent)
		}
	}
}

func TestCreate_RequiresToken(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	t.Cleanup(srv.Close)

	svc := NewRecordsService(newTestClient(srv.URL, &memStore{}))
	_, err := svc.Create(context.Background(), domain.CreateRegistroEnvase{})
	if err == nil {
		t.Fatalf("expected error without token")
	}
	if requests != 0 {
		t.Fatalf("expected no request, got %d", requests)
	}
}

func TestGet_DecodesRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/production-records/42" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"statusCode":404,"message":"Registro no encontrado","error":"Not Found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(domain.RegistroEnvase{ID: 42, CantidadDeEnvasesProducidos: 100})
	}))
	t.Cleanup(srv.Close)

	svc := NewRecordsService(newTestClient(srv.URL, &memStore{token: "tok1"}))

	rec, err := svc.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rec.ID != 42 || rec.CantidadDeEnvasesProducidos != 100 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}
