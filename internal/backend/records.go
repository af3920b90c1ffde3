package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/envaplast/planta-cli/internal/core/domain"
	"github.com/envaplast/planta-cli/internal/core/ports"
)

const (
	envasesPath = "/api/production-records/envases"
	recordsPath = "/api/production-records"
)

// RecordsService implements ports.RecordsClient. All calls are
// authenticated; role enforcement is the backend's job, the client only
// pre-checks where the UI wants an early answer.
type RecordsService struct {
	client *Client
}

func NewRecordsService(client *Client) *RecordsService {
	return &RecordsService{client: client}
}

// Create registers a new production batch.
func (s *RecordsService) Create(ctx context.Context, req domain.CreateRegistroEnvase) (*domain.RegistroEnvase, error) {
	var created domain.RegistroEnvase
	err := s.client.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        envasesPath,
		Body:        req,
		RequireAuth: true,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// List fetches one page of records.
func (s *RecordsService) List(ctx context.Context, q ports.RegistrosQuery) (*domain.RegistrosPage, error) {
	var page domain.RegistrosPage
	err := s.client.Do(ctx, Request{
		Method:      http.MethodGet,
		Path:        recordsPath,
		Query:       listQuery(q),
		RequireAuth: true,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single record by id.
func (s *RecordsService) Get(ctx context.Context, id int) (*domain.RegistroEnvase, error) {
	var record domain.RegistroEnvase
	err := s.client.Do(ctx, Request{
		Method:      http.MethodGet,
		Path:        recordsPath + "/" + strconv.Itoa(id),
		RequireAuth: true,
	}, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// listQuery renders the query struct, omitting zero values so the backend
// applies its own defaults.
func listQuery(q ports.RegistrosQuery) url.Values {
	v := url.Values{}
	setInt := func(key string, n int) {
		if n > 0 {
			v.Set(key, strconv.Itoa(n))
		}
	}
	setInt("page", q.Page)
	setInt("limit", q.Limit)
	setInt("userId", q.UserID)
	setInt("operarioId", q.OperarioID)
	setInt("productoId", q.ProductoID)
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	return v
}
