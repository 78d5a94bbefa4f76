// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	cartdom "storefront/internal/domain/cartline"
	"storefront/internal/domain/common"
	custdom "storefront/internal/domain/customer"
	itemdom "storefront/internal/domain/item"
	mediadom "storefront/internal/domain/media"
	saledom "storefront/internal/domain/sale"
)

// ---------------------------------------------------------------------------
// in-memory repositories with version-tag semantics
// ---------------------------------------------------------------------------

type fakeItemRepo struct {
	mu       sync.Mutex
	byID     map[string]*itemdom.Item
	versions map[string]int

	failUpdate map[string]error // itemID -> forced Update error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		byID:       map[string]*itemdom.Item{},
		versions:   map[string]int{},
		failUpdate: map[string]error{},
	}
}

func (r *fakeItemRepo) Insert(_ context.Context, it *itemdom.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[it.ID]; ok {
		return fmt.Errorf("%w: item %s", common.ErrConflict, it.ID)
	}
	cp := *it
	r.byID[it.ID] = &cp
	r.versions[it.ID] = 1
	return nil
}

func (r *fakeItemRepo) Get(_ context.Context, id string) (*itemdom.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: item %s", common.ErrNotFound, id)
	}
	cp := *it
	cp.Version = strconv.Itoa(r.versions[id])
	return &cp, nil
}

func (r *fakeItemRepo) List(_ context.Context) ([]*itemdom.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*itemdom.Item, 0, len(r.byID))
	for id, it := range r.byID {
		cp := *it
		cp.Version = strconv.Itoa(r.versions[id])
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *itemdom.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failUpdate[it.ID]; ok {
		return err
	}
	if _, ok := r.byID[it.ID]; !ok {
		return fmt.Errorf("%w: item %s", common.ErrNotFound, it.ID)
	}
	if it.Version != strconv.Itoa(r.versions[it.ID]) {
		return fmt.Errorf("%w: item %s version mismatch", common.ErrConflict, it.ID)
	}
	cp := *it
	r.byID[it.ID] = &cp
	r.versions[it.ID]++
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	delete(r.versions, id)
	return nil
}

type fakeLineRepo struct {
	mu       sync.Mutex
	byID     map[string]*cartdom.Line
	versions map[string]int

	failUpdate map[string]error // lineID -> forced Update error
}

func newFakeLineRepo() *fakeLineRepo {
	return &fakeLineRepo{
		byID:       map[string]*cartdom.Line{},
		versions:   map[string]int{},
		failUpdate: map[string]error{},
	}
}

func (r *fakeLineRepo) Insert(_ context.Context, l *cartdom.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[l.ID]; ok {
		return fmt.Errorf("%w: line %s", common.ErrConflict, l.ID)
	}
	cp := *l
	r.byID[l.ID] = &cp
	r.versions[l.ID] = 1
	return nil
}

func (r *fakeLineRepo) Update(_ context.Context, l *cartdom.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failUpdate[l.ID]; ok {
		return err
	}
	if _, ok := r.byID[l.ID]; !ok {
		return fmt.Errorf("%w: line %s", common.ErrNotFound, l.ID)
	}
	if l.Version != strconv.Itoa(r.versions[l.ID]) {
		return fmt.Errorf("%w: line %s version mismatch", common.ErrConflict, l.ID)
	}
	cp := *l
	r.byID[l.ID] = &cp
	r.versions[l.ID]++
	return nil
}

func (r *fakeLineRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	delete(r.versions, id)
	return nil
}

func (r *fakeLineRepo) ListByCustomer(_ context.Context, email string) ([]*cartdom.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*cartdom.Line
	for id, l := range r.byID {
		if l.CustomerEmail == email {
			cp := *l
			cp.Version = strconv.Itoa(r.versions[id])
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCustomerRepo struct {
	mu   sync.Mutex
	byID map[string]*custdom.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: map[string]*custdom.Customer{}}
}

func (r *fakeCustomerRepo) Insert(_ context.Context, c *custdom.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; ok {
		return fmt.Errorf("%w: customer %s", common.ErrConflict, c.ID)
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Get(_ context.Context, id string) (*custdom.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: customer %s", common.ErrNotFound, id)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*custdom.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Email == normalizeTestEmail(email) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeSaleRepo struct {
	mu      sync.Mutex
	records []*saledom.Record
}

func newFakeSaleRepo() *fakeSaleRepo { return &fakeSaleRepo{} }

func (r *fakeSaleRepo) Insert(_ context.Context, rec *saledom.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.records = append(r.records, &cp)
	return nil
}

func (r *fakeSaleRepo) ListBetween(_ context.Context, from, to time.Time) ([]*saledom.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*saledom.Record
	for _, rec := range r.records {
		if !from.IsZero() && rec.SaleDate.Before(from) {
			continue
		}
		if !to.IsZero() && rec.SaleDate.After(to) {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakeSaleRepo) ListByItem(_ context.Context, itemID string) ([]*saledom.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*saledom.Record
	for _, rec := range r.records {
		if rec.ItemID == itemID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakeSaleRepo) ListByCustomer(_ context.Context, email string) ([]*saledom.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*saledom.Record
	for _, rec := range r.records {
		if rec.CustomerEmail == normalizeTestEmail(email) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(recs []*saledom.Record) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].SaleDate.After(recs[j].SaleDate) })
}

// ---------------------------------------------------------------------------
// blob store fake
// ---------------------------------------------------------------------------

type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte            // url -> data
	infos   map[string]mediadom.FileInfo // url -> metadata
	deleted []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects: map[string][]byte{},
		infos:   map[string]mediadom.FileInfo{},
	}
}

func (s *fakeBlobStore) Upload(_ context.Context, data []byte, objectName, contentType string, info mediadom.FileInfo) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://blobs.test/" + objectName
	s.objects[url] = append([]byte(nil), data...)
	info.URL = url
	info.ContentType = contentType
	s.infos[url] = info
	return url, nil
}

func (s *fakeBlobStore) Download(_ context.Context, url string) ([]byte, string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[url]
	if !ok {
		return nil, "", "", fmt.Errorf("%w: %s", common.ErrNotFound, url)
	}
	info := s.infos[url]
	return append([]byte(nil), data...), info.ContentType, info.FileName, nil
}

func (s *fakeBlobStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, url)
	delete(s.infos, url)
	s.deleted = append(s.deleted, url)
	return nil
}

func (s *fakeBlobStore) GetInfo(_ context.Context, url string) (mediadom.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.infos[url]
	if !ok {
		return mediadom.FileInfo{}, fmt.Errorf("%w: %s", common.ErrNotFound, url)
	}
	return info, nil
}

func (s *fakeBlobStore) List(_ context.Context, prefix string) ([]mediadom.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []mediadom.FileInfo
	for _, info := range s.infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out, nil
}

// ---------------------------------------------------------------------------
// misc fakes
// ---------------------------------------------------------------------------

type fakeMailer struct {
	mu    sync.Mutex
	sent  int
	last  []*saledom.Record
	lastC string
	err   error
}

func (m *fakeMailer) SendReceipt(_ context.Context, toEmail, customerName, checkoutID string, records []*saledom.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent++
	m.last = records
	m.lastC = checkoutID
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func normalizeTestEmail(email string) string {
	e, _ := normalizeEmail(email)
	return e
}
