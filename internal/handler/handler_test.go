package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/config"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
)

// fakeStore adalah Store in-memory untuk test handler. Field *Err dipakai
// untuk memaksa kegagalan pada operasi tertentu.
type fakeStore struct {
	users    map[int64]*domain.User
	aspirasi map[int64]*domain.Aspirasi
	display  map[int64]*domain.DisplayAspirasi
	nextID   int64

	insertDisplayErr   error
	updateTextErr      error
	updateIlustrasiErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*domain.User),
		aspirasi: make(map[int64]*domain.Aspirasi),
		display:  make(map[int64]*domain.DisplayAspirasi),
	}
}

func (s *fakeStore) newID() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) CreateUser(user *domain.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return &pgconn.PgError{ConstraintName: "users_email_key"}
		}
	}
	user.ID = s.newID()
	s.users[user.ID] = user
	return nil
}

func (s *fakeStore) GetUserByID(id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (s *fakeStore) GetUserByEmail(email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) GetAllUsersExcept(id int64) ([]*domain.User, error) {
	users := make([]*domain.User, 0)
	for _, u := range s.users {
		if u.ID == id {
			continue
		}
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *fakeStore) CountUsers() (int64, error) {
	return int64(len(s.users)), nil
}

func (s *fakeStore) DeleteUser(id int64) (int64, error) {
	if _, ok := s.users[id]; !ok {
		return 0, nil
	}
	delete(s.users, id)
	return 1, nil
}

func (s *fakeStore) UpdateUserNama(id int64, nama string) (int64, error) {
	u, ok := s.users[id]
	if !ok {
		return 0, nil
	}
	u.Nama = nama
	return 1, nil
}

func (s *fakeStore) UpdateUserPassword(id int64, passwordHash string) (int64, error) {
	u, ok := s.users[id]
	if !ok {
		return 0, nil
	}
	u.PasswordHash = passwordHash
	return 1, nil
}

func (s *fakeStore) PromoteToSuperadmin(targetID int64, callerID int64) error {
	target, ok := s.users[targetID]
	if !ok {
		return sql.ErrNoRows
	}
	caller, ok := s.users[callerID]
	if !ok {
		return sql.ErrNoRows
	}
	caller.Role = domain.RoleAdmin
	target.Role = domain.RoleSuperadmin
	return nil
}

func (s *fakeStore) InsertAspirasi(a *domain.Aspirasi) error {
	a.ID = s.newID()
	copied := *a
	s.aspirasi[a.ID] = &copied
	return nil
}

func (s *fakeStore) GetAspirasiByID(id int64) (*domain.Aspirasi, error) {
	a, ok := s.aspirasi[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (s *fakeStore) GetAllAspirasi(filter domain.ListFilter) ([]*domain.Aspirasi, int64, error) {
	all := make([]*domain.Aspirasi, 0)
	for _, a := range s.aspirasi {
		copied := *a
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	switch filter.Kind {
	case domain.FilterRange:
		total := int64(len(all))
		offset := filter.Offset()
		if offset > len(all) {
			return []*domain.Aspirasi{}, total, nil
		}
		end := offset + filter.Limit()
		if end > len(all) {
			end = len(all)
		}
		return all[offset:end], total, nil
	case domain.FilterKeyword:
		matched := make([]*domain.Aspirasi, 0)
		for _, a := range all {
			if strings.Contains(strings.ToLower(a.Aspirasi), strings.ToLower(filter.Keyword)) {
				matched = append(matched, a)
			}
		}
		return matched, int64(len(matched)), nil
	default:
		return all, int64(len(all)), nil
	}
}

func (s *fakeStore) DeleteAspirasi(id int64) (int64, error) {
	if _, ok := s.aspirasi[id]; !ok {
		return 0, nil
	}
	delete(s.aspirasi, id)
	return 1, nil
}

func (s *fakeStore) InsertDisplayAspirasi(d *domain.DisplayAspirasi) error {
	if s.insertDisplayErr != nil {
		return s.insertDisplayErr
	}
	d.ID = s.newID()
	copied := *d
	s.display[d.ID] = &copied
	return nil
}

func (s *fakeStore) GetDisplayAspirasiByID(id int64) (*domain.DisplayAspirasi, error) {
	d, ok := s.display[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *d
	return &copied, nil
}

func (s *fakeStore) GetDisplayAspirasiIlustrasi(id int64) (*string, error) {
	d, ok := s.display[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if d.Ilustrasi == nil {
		return nil, nil
	}
	copied := *d.Ilustrasi
	return &copied, nil
}

func (s *fakeStore) GetAllDisplayAspirasi(filter domain.ListFilter) ([]*domain.DisplayAspirasi, int64, error) {
	all := make([]*domain.DisplayAspirasi, 0)
	for _, d := range s.display {
		copied := *d
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	switch filter.Kind {
	case domain.FilterRange:
		total := int64(len(all))
		offset := filter.Offset()
		if offset > len(all) {
			return []*domain.DisplayAspirasi{}, total, nil
		}
		end := offset + filter.Limit()
		if end > len(all) {
			end = len(all)
		}
		return all[offset:end], total, nil
	case domain.FilterKeyword:
		matched := make([]*domain.DisplayAspirasi, 0)
		for _, d := range all {
			if strings.Contains(strings.ToLower(d.Aspirasi), strings.ToLower(filter.Keyword)) {
				matched = append(matched, d)
			}
		}
		return matched, int64(len(matched)), nil
	default:
		return all, int64(len(all)), nil
	}
}

func (s *fakeStore) GetDisplayedAspirasi() ([]*domain.DisplayAspirasi, error) {
	displayed := make([]*domain.DisplayAspirasi, 0)
	for _, d := range s.display {
		if d.Status != domain.StatusDisplayed {
			continue
		}
		copied := *d
		displayed = append(displayed, &copied)
	}
	sort.Slice(displayed, func(i, j int) bool { return displayed[i].ID > displayed[j].ID })
	return displayed, nil
}

func (s *fakeStore) UpdateDisplayAspirasiStatus(id int64, status domain.DisplayStatus) (int64, error) {
	d, ok := s.display[id]
	if !ok {
		return 0, nil
	}
	d.Status = status
	return 1, nil
}

func (s *fakeStore) UpdateDisplayAspirasiKategori(id int64, kategori domain.Kategori) (int64, error) {
	d, ok := s.display[id]
	if !ok {
		return 0, nil
	}
	d.Kategori = kategori
	return 1, nil
}

func (s *fakeStore) UpdateDisplayAspirasiText(id int64, aspirasi string, ilustrasi *string) (int64, error) {
	if s.updateTextErr != nil {
		return 0, s.updateTextErr
	}
	d, ok := s.display[id]
	if !ok {
		return 0, nil
	}
	d.Aspirasi = aspirasi
	if ilustrasi != nil {
		copied := *ilustrasi
		d.Ilustrasi = &copied
	}
	return 1, nil
}

func (s *fakeStore) UpdateDisplayAspirasiIlustrasi(id int64, ilustrasi string) (int64, error) {
	if s.updateIlustrasiErr != nil {
		return 0, s.updateIlustrasiErr
	}
	d, ok := s.display[id]
	if !ok {
		return 0, nil
	}
	d.Ilustrasi = &ilustrasi
	return 1, nil
}

func (s *fakeStore) DeleteDisplayAspirasi(id int64) (int64, error) {
	if _, ok := s.display[id]; !ok {
		return 0, nil
	}
	delete(s.display, id)
	return 1, nil
}

// fakeBlob adalah blob store in-memory yang mencatat objek hidup dan riwayat
// penghapusan.
type fakeBlob struct {
	objects map[string][]byte
	removed []string

	uploadErr error
	removeErr error
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{objects: make(map[string][]byte)}
}

func (b *fakeBlob) Upload(_ context.Context, filename string, data []byte, _ string) error {
	if b.uploadErr != nil {
		return b.uploadErr
	}
	b.objects[filename] = data
	return nil
}

func (b *fakeBlob) Remove(_ context.Context, filename string) error {
	if b.removeErr != nil {
		return b.removeErr
	}
	delete(b.objects, filename)
	b.removed = append(b.removed, filename)
	return nil
}

func (b *fakeBlob) PublicURL(filename string) string {
	return "https://blob.test/public/" + filename
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "rahasia-test"
	cfg.JWT.Expiration = 1800
	cfg.JWT.RenewWindow = 600
	cfg.RateLimit.Public = "30-M"
	cfg.Upload.MaxSize = 5 << 20
	return cfg
}

func newTestHandler(t *testing.T) (*Handler, *fakeStore, *fakeBlob) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := newFakeStore()
	blob := newFakeBlob()

	h, err := NewHandler(testConfig(), store, blob, rdb)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, store, blob
}

// seedUser menambahkan user langsung ke store dan mengembalikan bearer token
// untuknya.
func seedUser(t *testing.T, h *Handler, store *fakeStore, email string, password string, role domain.Role) (*domain.User, string) {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &domain.User{
		Email:        email,
		Nama:         "User Test",
		PasswordHash: string(passwordHash),
		Role:         role,
	}
	require.NoError(t, store.CreateUser(user))

	tokenString, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	return user, "Bearer " + tokenString
}

func doJSON(t *testing.T, h *Handler, method string, path string, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

// multipartBody menyusun body multipart dari field teks dan, jika fileName
// tidak kosong, satu file pada field "ilustrasi".
func multipartBody(t *testing.T, fields map[string]string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("ilustrasi", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buf, writer.FormDataContentType()
}

func doMultipart(t *testing.T, h *Handler, method string, path string, auth string, fields map[string]string, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, fields, fileName, fileContent)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
