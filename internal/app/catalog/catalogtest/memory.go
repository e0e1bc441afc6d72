// Package catalogtest provides an in-memory catalog store for unit tests.
// It follows the same ordering and filter rules as the SQL read models.
package catalogtest

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/projection"
	"github.com/light-bringer/catalog-service/internal/models/m_department"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/paging"
)

// Store holds departments and products in memory and implements every
// catalog store contract.
type Store struct {
	mu          sync.Mutex
	departments map[int64]m_department.Data
	products    map[int64]m_product.Data
	nextDeptID  int64

	// Err, when set, is returned by every method.
	Err error
	// InsertHook runs before Insert takes the lock; tests use it to simulate races.
	InsertHook func(name string)
}

var (
	_ contracts.ProductReadModel     = (*Store)(nil)
	_ contracts.DepartmentReadModel  = (*Store)(nil)
	_ contracts.DepartmentRepository = (*Store)(nil)
	_ contracts.ProductWriter        = (*Store)(nil)
)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		departments: make(map[int64]m_department.Data),
		products:    make(map[int64]m_product.Data),
		nextDeptID:  1,
	}
}

// AddDepartment stores a department with an explicit id.
func (s *Store) AddDepartment(id int64, name string, description *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments[id] = m_department.Data{ID: id, Name: name, Description: description}
	if id >= s.nextDeptID {
		s.nextDeptID = id + 1
	}
}

// AddProduct stores a product. departmentID 0 means no department.
func (s *Store) AddProduct(id int64, name, category, brand string, departmentID int64) {
	row := m_product.Data{
		ID:          id,
		Name:        name,
		Category:    category,
		Brand:       brand,
		Cost:        decimal.NewFromInt(id),
		RetailPrice: decimal.NewFromInt(id * 2),
		SKU:         fmt.Sprintf("SKU-%d", id),
	}
	if departmentID != 0 {
		row.DepartmentID = &departmentID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id] = row
}

// Product returns a stored product row.
func (s *Store) Product(id int64) (m_product.Data, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

// DepartmentCount returns the number of stored departments.
func (s *Store) DepartmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.departments)
}

func (s *Store) GetProductByID(_ context.Context, productID int64) (*contracts.ProductDTO, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	s.join(&row)
	return projection.Product(&row, true)
}

func (s *Store) ListProducts(ctx context.Context, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return s.list(func(m_product.Data) bool { return true }, page, opts)
}

func (s *Store) ListByCategory(_ context.Context, category string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return s.list(func(p m_product.Data) bool { return p.Category == category }, page, opts)
}

func (s *Store) ListByBrand(_ context.Context, brand string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return s.list(func(p m_product.Data) bool { return p.Brand == brand }, page, opts)
}

func (s *Store) ListByDepartmentID(_ context.Context, departmentID int64, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return s.list(func(p m_product.Data) bool {
		return p.DepartmentID != nil && *p.DepartmentID == departmentID
	}, page, opts)
}

func (s *Store) ListByDepartmentName(_ context.Context, departmentName string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return s.list(func(p m_product.Data) bool {
		if p.DepartmentID == nil {
			return false
		}
		d, ok := s.departments[*p.DepartmentID]
		return ok && d.Name == departmentName
	}, page, opts)
}

func (s *Store) SearchByName(_ context.Context, substring string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	needle := strings.ToLower(substring)
	return s.list(func(p m_product.Data) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}, page, opts)
}

func (s *Store) ListDepartments(context.Context) ([]*contracts.DepartmentDTO, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return projection.Departments(s.sortedDepartments()), nil
}

func (s *Store) ListDepartmentsWithProductCount(context.Context) ([]*contracts.DepartmentWithCountDTO, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	depts := s.sortedDepartments()
	rows := make([]m_department.CountRow, 0, len(depts))
	for _, d := range depts {
		rows = append(rows, s.countRow(d))
	}
	return projection.DepartmentsWithCount(rows)
}

func (s *Store) GetDepartmentWithProductCount(_ context.Context, departmentID int64) (*contracts.DepartmentWithCountDTO, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.departments[departmentID]
	if !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	row := s.countRow(d)
	return projection.DepartmentWithCount(&row)
}

func (s *Store) GetDepartmentByID(_ context.Context, departmentID int64) (*contracts.DepartmentDTO, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.departments[departmentID]
	if !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	return projection.Department(&d), nil
}

func (s *Store) GetDepartmentByName(ctx context.Context, name string) (*contracts.DepartmentDTO, error) {
	return s.FindByName(ctx, name)
}

func (s *Store) FindByName(_ context.Context, name string) (*contracts.DepartmentDTO, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.departments {
		if d.Name == name {
			return projection.Department(&d), nil
		}
	}
	return nil, domain.ErrDepartmentNotFound
}

func (s *Store) Insert(_ context.Context, name string) (*contracts.DepartmentDTO, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.InsertHook != nil {
		s.InsertHook(name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.departments {
		if d.Name == name {
			return nil, fmt.Errorf("%w: %q", domain.ErrDepartmentExists, name)
		}
	}
	d := m_department.Data{ID: s.nextDeptID, Name: name}
	s.departments[d.ID] = d
	s.nextDeptID++
	return projection.Department(&d), nil
}

func (s *Store) UpsertProducts(_ context.Context, rows []*m_product.Data) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rows {
		row := *r
		row.Department = nil
		s.products[row.ID] = row
	}
	return nil
}

func (s *Store) list(match func(m_product.Data) bool, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.products))
	for id, p := range s.products {
		if match(p) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	total := int64(len(ids))
	start := min(page.Offset(), len(ids))
	end := min(start+page.Limit(), len(ids))

	rows := make([]m_product.Data, 0, end-start)
	for _, id := range ids[start:end] {
		row := s.products[id]
		if opts.WithDepartment {
			s.join(&row)
		}
		rows = append(rows, row)
	}

	items, err := projection.Products(rows, opts.WithDepartment)
	if err != nil {
		return nil, err
	}
	return paging.NewPage(items, page, total), nil
}

func (s *Store) join(row *m_product.Data) {
	if row.DepartmentID == nil {
		return
	}
	if d, ok := s.departments[*row.DepartmentID]; ok {
		row.Department = &d
	}
}

func (s *Store) countRow(d m_department.Data) m_department.CountRow {
	var n int64
	for _, p := range s.products {
		if p.DepartmentID != nil && *p.DepartmentID == d.ID {
			n++
		}
	}
	return m_department.CountRow{ID: d.ID, Name: d.Name, Description: d.Description, ProductCount: n}
}

func (s *Store) sortedDepartments() []m_department.Data {
	out := make([]m_department.Data, 0, len(s.departments))
	for _, d := range s.departments {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b m_department.Data) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}
