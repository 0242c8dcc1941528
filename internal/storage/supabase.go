package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// SupabaseStorage adalah klien REST untuk Supabase Storage dengan service
// role key (melewati RLS).
type SupabaseStorage struct {
	client *resty.Client
	bucket string
}

func NewSupabaseStorage(baseURL string, serviceKey string, bucket string, timeout time.Duration) *SupabaseStorage {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(serviceKey).
		SetTimeout(timeout)

	return &SupabaseStorage{
		client: client,
		bucket: bucket,
	}
}

func (s *SupabaseStorage) Upload(ctx context.Context, filename string, data []byte, contentType string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("Cache-Control", "max-age=3600").
		SetBody(data).
		Post(fmt.Sprintf("/storage/v1/object/%s/%s", s.bucket, filename))
	if err != nil {
		return fmt.Errorf("unggah ilustrasi %s: %w", filename, err)
	}
	if resp.IsError() {
		return fmt.Errorf("unggah ilustrasi %s: %s", filename, resp.Status())
	}

	return nil
}

func (s *SupabaseStorage) Remove(ctx context.Context, filename string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/storage/v1/object/%s/%s", s.bucket, filename))
	if err != nil {
		return fmt.Errorf("hapus ilustrasi %s: %w", filename, err)
	}
	if resp.IsError() {
		return fmt.Errorf("hapus ilustrasi %s: %s", filename, resp.Status())
	}

	return nil
}

func (s *SupabaseStorage) PublicURL(filename string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.client.BaseURL, s.bucket, filename)
}
