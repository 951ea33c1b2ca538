package config

import (
	"fmt"
	"os"
	"strconv"
)

// StorageBackend selects where users and trips are persisted.
type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StoragePostgres StorageBackend = "postgres"
)

// StorageConfig selects the persistence backend. DatabaseURL is only
// meaningful (and only required) for the postgres backend.
type StorageConfig struct {
	Backend     StorageBackend
	DatabaseURL string
}

func LoadStorageConfigFromEnv() (StorageConfig, error) {
	cfg := StorageConfig{Backend: StorageMemory}

	switch v := StorageBackend(os.Getenv("STORAGE_BACKEND")); v {
	case "", StorageMemory:
	case StoragePostgres:
		cfg.Backend = StoragePostgres
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return StorageConfig{}, fmt.Errorf("missing required env var: DATABASE_URL (STORAGE_BACKEND=postgres)")
		}
	default:
		return StorageConfig{}, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StoragePostgres, v)
	}

	return cfg, nil
}

// FileBackend selects where uploaded files land.
type FileBackend string

const (
	FileMemory   FileBackend = "memory"
	FileSupabase FileBackend = "supabase"
	FileS3       FileBackend = "s3"
)

func LoadFileBackendFromEnv() (FileBackend, error) {
	switch v := FileBackend(os.Getenv("FILE_STORAGE")); v {
	case "", FileMemory:
		return FileMemory, nil
	case FileSupabase, FileS3:
		return v, nil
	default:
		return "", fmt.Errorf("FILE_STORAGE must be %q, %q or %q, got %q", FileMemory, FileSupabase, FileS3, v)
	}
}

// SupabaseConfig holds credentials for the Supabase storage REST API.
type SupabaseConfig struct {
	URL    string
	APIKey string
	Bucket string
}

func LoadSupabaseConfigFromEnv() (SupabaseConfig, error) {
	cfg := SupabaseConfig{
		URL:    os.Getenv("SUPABASE_URL"),
		APIKey: os.Getenv("SUPABASE_API_KEY"),
		Bucket: os.Getenv("SUPABASE_BUCKET"),
	}
	if cfg.URL == "" || cfg.APIKey == "" || cfg.Bucket == "" {
		return SupabaseConfig{}, fmt.Errorf("missing required env vars: SUPABASE_URL, SUPABASE_API_KEY, SUPABASE_BUCKET")
	}
	return cfg, nil
}

// S3Config holds settings for an S3-compatible object store. Endpoint is
// optional for AWS proper; minio deployments set it together with
// S3_USE_PATH_STYLE=true.
type S3Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UsePathStyle  bool
}

func LoadS3ConfigFromEnv() (S3Config, error) {
	cfg := S3Config{
		Endpoint:      os.Getenv("S3_ENDPOINT"),
		Region:        os.Getenv("S3_REGION"),
		Bucket:        os.Getenv("S3_BUCKET"),
		AccessKey:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretKey:     os.Getenv("S3_SECRET_ACCESS_KEY"),
		PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Bucket == "" {
		return S3Config{}, fmt.Errorf("missing required env var: S3_BUCKET")
	}
	if v := os.Getenv("S3_USE_PATH_STYLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return S3Config{}, fmt.Errorf("S3_USE_PATH_STYLE must be a boolean: %w", err)
		}
		cfg.UsePathStyle = b
	}
	return cfg, nil
}
