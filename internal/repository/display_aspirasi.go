package repository

import (
	"context"
	"time"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
)

func (r *Repository) InsertDisplayAspirasi(d *domain.DisplayAspirasi) error {
	query := `
		INSERT INTO display_aspirasi (aspirasi, penulis, ilustrasi, kategori, added_by, last_updated, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_dispirasi
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{d.Aspirasi, d.Penulis, d.Ilustrasi, d.Kategori, d.AddedBy, d.LastUpdated, d.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&d.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDisplayAspirasiByID(id int64) (*domain.DisplayAspirasi, error) {
	query := `
		SELECT aspirasi, penulis, ilustrasi, kategori, added_by, last_updated, status
		FROM display_aspirasi WHERE id_dispirasi = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	d := &domain.DisplayAspirasi{
		ID: id,
	}

	dst := []any{&d.Aspirasi, &d.Penulis, &d.Ilustrasi, &d.Kategori, &d.AddedBy, &d.LastUpdated, &d.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return d, nil
}

// GetDisplayAspirasiIlustrasi mengembalikan nama objek ilustrasi milik satu
// record; nil berarti record ada tetapi tidak punya ilustrasi.
func (r *Repository) GetDisplayAspirasiIlustrasi(id int64) (*string, error) {
	query := `
		SELECT ilustrasi FROM display_aspirasi WHERE id_dispirasi = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var ilustrasi *string
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&ilustrasi); err != nil {
		return nil, err
	}

	return ilustrasi, nil
}

// GetAllDisplayAspirasi menggunakan semantik filter yang sama dengan
// GetAllAspirasi, diterapkan pada kolom teks aspirasi.
func (r *Repository) GetAllDisplayAspirasi(filter domain.ListFilter) ([]*domain.DisplayAspirasi, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id_dispirasi, aspirasi, penulis, ilustrasi, kategori, added_by, last_updated, status
		FROM display_aspirasi
		ORDER BY id_dispirasi DESC
	`
	args := []any{}

	switch filter.Kind {
	case domain.FilterRange:
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, filter.Limit(), filter.Offset())
	case domain.FilterKeyword:
		query = `
			SELECT id_dispirasi, aspirasi, penulis, ilustrasi, kategori, added_by, last_updated, status
			FROM display_aspirasi
			WHERE aspirasi ILIKE '%' || $1 || '%'
			ORDER BY id_dispirasi DESC
		`
		args = append(args, filter.Keyword)
	}

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]*domain.DisplayAspirasi, 0)
	for rows.Next() {
		d := &domain.DisplayAspirasi{}
		dst := []any{&d.ID, &d.Aspirasi, &d.Penulis, &d.Ilustrasi, &d.Kategori, &d.AddedBy, &d.LastUpdated, &d.Status}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		list = append(list, d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	count := int64(len(list))
	if filter.Kind == domain.FilterRange {
		if err := r.dbpool.QueryRowContext(ctx, `SELECT count(*) FROM display_aspirasi`).Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	return list, count, nil
}

// GetDisplayedAspirasi mengembalikan record berstatus displayed untuk
// landing page, id terbaru lebih dulu.
func (r *Repository) GetDisplayedAspirasi() ([]*domain.DisplayAspirasi, error) {
	query := `
		SELECT id_dispirasi, aspirasi, penulis, ilustrasi, kategori, added_by, last_updated, status
		FROM display_aspirasi
		WHERE status = $1
		ORDER BY id_dispirasi DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, domain.StatusDisplayed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.DisplayAspirasi, 0)
	for rows.Next() {
		d := &domain.DisplayAspirasi{}
		dst := []any{&d.ID, &d.Aspirasi, &d.Penulis, &d.Ilustrasi, &d.Kategori, &d.AddedBy, &d.LastUpdated, &d.Status}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		list = append(list, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) UpdateDisplayAspirasiStatus(id int64, status domain.DisplayStatus) (int64, error) {
	query := `
		UPDATE display_aspirasi SET status = $1, last_updated = $2 WHERE id_dispirasi = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) UpdateDisplayAspirasiKategori(id int64, kategori domain.Kategori) (int64, error) {
	query := `
		UPDATE display_aspirasi SET kategori = $1, last_updated = $2 WHERE id_dispirasi = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, kategori, time.Now().UTC(), id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// UpdateDisplayAspirasiText mengganti teks aspirasi; ilustrasi ikut diganti
// hanya jika bukan nil.
func (r *Repository) UpdateDisplayAspirasiText(id int64, aspirasi string, ilustrasi *string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE display_aspirasi SET aspirasi = $1, last_updated = $2 WHERE id_dispirasi = $3
	`
	args := []any{aspirasi, time.Now().UTC(), id}

	if ilustrasi != nil {
		query = `
			UPDATE display_aspirasi SET aspirasi = $1, ilustrasi = $2, last_updated = $3 WHERE id_dispirasi = $4
		`
		args = []any{aspirasi, *ilustrasi, time.Now().UTC(), id}
	}

	result, err := r.dbpool.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) UpdateDisplayAspirasiIlustrasi(id int64, ilustrasi string) (int64, error) {
	query := `
		UPDATE display_aspirasi SET ilustrasi = $1, last_updated = $2 WHERE id_dispirasi = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, ilustrasi, time.Now().UTC(), id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) DeleteDisplayAspirasi(id int64) (int64, error) {
	query := `
		DELETE FROM display_aspirasi WHERE id_dispirasi = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
