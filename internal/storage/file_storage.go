package storage

import (
	"context"
	"os"
	"path/filepath"

	"resale/internal/types"
)

type fileStorage struct {
	baseDir string
}

func NewFileStorage(baseDir string) Storage {
	if baseDir == "" {
		baseDir = ArchiveDir
	}
	return &fileStorage{baseDir: baseDir}
}

func (f fileStorage) Save(ctx context.Context, location string, file types.File) error {
	target := filepath.Join(f.baseDir, location)
	if err := os.MkdirAll(filepath.Dir(target), 0700); err != nil {
		return err
	}

	fi, err := os.Create(target)
	if err != nil {
		return err
	}
	defer fi.Close()

	if _, err := fi.ReadFrom(file.Content); err != nil {
		return err
	}
	return nil
}

func (f fileStorage) Get(ctx context.Context, location string) (*types.File, error) {
	target := filepath.Join(f.baseDir, location)
	fi, err := os.Open(target)
	if err != nil {
		return nil, err
	}

	stat, err := fi.Stat()
	if err != nil {
		_ = fi.Close()
		return nil, err
	}

	return &types.File{
		Content: fi,
		Stat: types.FileStat{
			Size:        stat.Size(),
			Name:        stat.Name(),
			Mode:        stat.Mode(),
			ContentType: "application/json",
		},
	}, nil
}

func (f fileStorage) Delete(ctx context.Context, location string) error {
	err := os.Remove(filepath.Join(f.baseDir, location))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f fileStorage) Ping(ctx context.Context) error {
	return os.MkdirAll(f.baseDir, 0700)
}
