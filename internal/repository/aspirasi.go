package repository

import (
	"context"
	"time"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
)

func (r *Repository) InsertAspirasi(a *domain.Aspirasi) error {
	query := `
		INSERT INTO aspirasi (aspirasi, penulis, kategori, c_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id_aspirasi
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{a.Aspirasi, a.Penulis, a.Kategori, a.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAspirasiByID(id int64) (*domain.Aspirasi, error) {
	query := `
		SELECT aspirasi, penulis, kategori, c_date
		FROM aspirasi WHERE id_aspirasi = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	a := &domain.Aspirasi{
		ID: id,
	}

	dst := []any{&a.Aspirasi, &a.Penulis, &a.Kategori, &a.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return a, nil
}

// GetAllAspirasi mengembalikan daftar aspirasi sesuai bentuk filter beserta
// total count. Untuk rentang paginasi, count dihitung terpisah tanpa
// paginasi; untuk bentuk lain count sama dengan jumlah baris hasil.
func (r *Repository) GetAllAspirasi(filter domain.ListFilter) ([]*domain.Aspirasi, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id_aspirasi, aspirasi, penulis, kategori, c_date
		FROM aspirasi
		ORDER BY id_aspirasi DESC
	`
	args := []any{}

	switch filter.Kind {
	case domain.FilterRange:
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, filter.Limit(), filter.Offset())
	case domain.FilterKeyword:
		query = `
			SELECT id_aspirasi, aspirasi, penulis, kategori, c_date
			FROM aspirasi
			WHERE aspirasi ILIKE '%' || $1 || '%'
			ORDER BY id_aspirasi DESC
		`
		args = append(args, filter.Keyword)
	}

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]*domain.Aspirasi, 0)
	for rows.Next() {
		a := &domain.Aspirasi{}
		dst := []any{&a.ID, &a.Aspirasi, &a.Penulis, &a.Kategori, &a.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		list = append(list, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	count := int64(len(list))
	if filter.Kind == domain.FilterRange {
		if err := r.dbpool.QueryRowContext(ctx, `SELECT count(*) FROM aspirasi`).Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	return list, count, nil
}

func (r *Repository) DeleteAspirasi(id int64) (int64, error) {
	query := `
		DELETE FROM aspirasi WHERE id_aspirasi = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
