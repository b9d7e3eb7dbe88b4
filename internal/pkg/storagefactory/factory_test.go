package storagefactory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"protetor/internal/config"
	"protetor/internal/pkg/storage"
)

func TestNewStorage(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		cfg      *config.StorageConfig
		wantErr  bool
		wantType string
	}{
		{
			name: "valid local storage config",
			cfg: &config.StorageConfig{
				Type:  "local",
				Local: &config.LocalConfig{BasePath: tmpDir},
			},
			wantType: "local",
		},
		{
			name: "missing local config",
			cfg: &config.StorageConfig{
				Type:  "local",
				Local: nil,
			},
			wantErr: true,
		},
		{
			name: "missing oss config",
			cfg: &config.StorageConfig{
				Type: "oss",
			},
			wantErr: true,
		},
		{
			name: "unsupported storage type",
			cfg: &config.StorageConfig{
				Type: "s3",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewStorage(context.Background(), tt.cfg)

			if tt.wantErr {
				if err == nil {
					t.Errorf("NewStorage() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewStorage() unexpected error: %v", err)
			}
			if st.GetStorageType() != tt.wantType {
				t.Errorf("GetStorageType() = %v, want %v", st.GetStorageType(), tt.wantType)
			}
		})
	}
}

func TestLocalStorage_Operations(t *testing.T) {
	ctx := context.Background()
	st, err := NewStorage(ctx, &config.StorageConfig{
		Type:  "local",
		Local: &config.LocalConfig{BasePath: t.TempDir()},
	})
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	testKey := "imagens/test.png"
	testContent := "\x89PNG\r\n\x1a\nfake"

	if err := st.Upload(ctx, testKey, strings.NewReader(testContent), "image/png"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	exists, err := st.Exists(ctx, testKey)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Errorf("Exists() = false, want true")
	}

	reader, err := st.Download(ctx, testKey)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	got, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != testContent {
		t.Errorf("Download() content = %q, want %q", got, testContent)
	}

	info, err := st.GetFileInfo(ctx, testKey)
	if err != nil {
		t.Fatalf("GetFileInfo() error = %v", err)
	}
	if info.Size != int64(len(testContent)) {
		t.Errorf("GetFileInfo() Size = %v, want %v", info.Size, len(testContent))
	}
	if info.ContentType != "image/png" {
		t.Errorf("GetFileInfo() ContentType = %v, want image/png", info.ContentType)
	}
	if info.Name() != "test.png" {
		t.Errorf("FileInfo.Name() = %v, want test.png", info.Name())
	}

	files, err := st.List(ctx, "imagens/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(files) != 1 || files[0].Key != testKey {
		t.Errorf("List() = %v, want one entry %s", files, testKey)
	}

	empty, err := st.List(ctx, "videos/")
	if err != nil {
		t.Fatalf("List() on missing dir error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("List() on missing dir = %v, want empty", empty)
	}
}

func TestLocalStorage_NonExistentFile(t *testing.T) {
	ctx := context.Background()
	st, err := NewStorage(ctx, &config.StorageConfig{
		Type:  "local",
		Local: &config.LocalConfig{BasePath: t.TempDir()},
	})
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if _, err := st.Download(ctx, "imagens/doesnotexist.png"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Download() error = %v, want ErrNotFound", err)
	}

	if _, err := st.GetFileInfo(ctx, "imagens/doesnotexist.png"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetFileInfo() error = %v, want ErrNotFound", err)
	}

	// 目录本身不算文件
	if err := st.Upload(ctx, "imagens/a.png", strings.NewReader("x"), "image/png"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if _, err := st.Download(ctx, "imagens"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Download(dir) error = %v, want ErrNotFound", err)
	}
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	st, err := NewStorage(ctx, &config.StorageConfig{
		Type:  "local",
		Local: &config.LocalConfig{BasePath: t.TempDir()},
	})
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if _, err := st.Download(ctx, "../../etc/passwd"); !errors.Is(err, storage.ErrInvalidKey) {
		t.Errorf("Download() error = %v, want ErrInvalidKey", err)
	}
	if err := st.Upload(ctx, "../escape.txt", strings.NewReader("x"), "text/plain"); !errors.Is(err, storage.ErrInvalidKey) {
		t.Errorf("Upload() error = %v, want ErrInvalidKey", err)
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		dir, name string
		want      string
		wantErr   bool
	}{
		{dir: "imagens", name: "a.png", want: "imagens/a.png"},
		{dir: "audios/", name: "audio_ana.mp3", want: "audios/audio_ana.mp3"},
		{dir: "imagens", name: "..", wantErr: true},
		{dir: "imagens", name: "", wantErr: true},
		{dir: "imagens", name: `..\x.png`, wantErr: true},
		{dir: "imagens", name: "a/b.png", wantErr: true},
	}

	for _, tt := range tests {
		got, err := storage.Join(tt.dir, tt.name)
		if tt.wantErr {
			if !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Join(%q, %q) error = %v, want ErrInvalidKey", tt.dir, tt.name, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Join(%q, %q) = %q, %v, want %q", tt.dir, tt.name, got, err, tt.want)
		}
	}
}
