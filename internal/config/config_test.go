package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"doccompare/internal/types"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "doccompare.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "docs")
		if err := os.Mkdir(root, 0755); err != nil {
			t.Fatal(err)
		}
		path := writeConfig(t, dir,
			"root_path: "+root+"\nexclusions: timestamp, generated-by\n")

		settings, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if settings.RootPath != root {
			t.Errorf("RootPath = %s, want %s", settings.RootPath, root)
		}
		if want := []string{"timestamp", "generated-by"}; !reflect.DeepEqual(settings.Exclusions, want) {
			t.Errorf("Exclusions = %v, want %v", settings.Exclusions, want)
		}
	})

	t.Run("missing root_path", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "exclusions: timestamp\n")

		_, err := Load(path)
		var appErr *types.AppError
		if !errors.As(err, &appErr) || appErr.Code != types.ErrConfig {
			t.Errorf("error = %v, want AppError with ErrConfig", err)
		}
	})

	t.Run("nonexistent root folder", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir,
			"root_path: "+filepath.Join(dir, "does-not-exist")+"\n")

		_, err := Load(path)
		var appErr *types.AppError
		if !errors.As(err, &appErr) || appErr.Code != types.ErrConfig {
			t.Errorf("error = %v, want AppError with ErrConfig", err)
		}
	})

	t.Run("root_path pointing at a file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "plain.txt")
		if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		path := writeConfig(t, dir, "root_path: "+file+"\n")

		_, err := Load(path)
		var appErr *types.AppError
		if !errors.As(err, &appErr) || appErr.Code != types.ErrConfig {
			t.Errorf("error = %v, want AppError with ErrConfig", err)
		}
	})

	t.Run("environment override", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "docs")
		if err := os.Mkdir(root, 0755); err != nil {
			t.Fatal(err)
		}
		t.Setenv("DOCCOMPARE_ROOT_PATH", root)

		settings, err := Load(filepath.Join(dir, "no-such-config.yaml"))
		if err != nil {
			t.Fatalf("Load with env override: %v", err)
		}
		if settings.RootPath != root {
			t.Errorf("RootPath = %s, want env value %s", settings.RootPath, root)
		}
	})
}

func TestSplitExclusions(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "timestamp", []string{"timestamp"}},
		{"trimmed", " a , b ,c", []string{"a", "b", "c"}},
		{"empties dropped", "a,,b,", []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitExclusions(tc.raw); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("SplitExclusions(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}
