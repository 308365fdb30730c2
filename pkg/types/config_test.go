package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", FilePath: "/tmp/file.json"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", FilePath: "/tmp/file.json"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid json config",
			config:  Config{Backend: "json", FilePath: "/tmp/file.json"},
			wantErr: nil,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: "sqlite", FilePath: "/tmp/objects.db"},
			wantErr: nil,
		},
		{
			name:    "empty FilePath is valid at config level",
			config:  Config{Backend: "json", FilePath: ""},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	if got := (Config{}).Path(); got != DefaultFilePath {
		t.Fatalf("expected %q, got %q", DefaultFilePath, got)
	}
	if got := (Config{FilePath: "objects.json"}).Path(); got != "objects.json" {
		t.Fatalf("expected objects.json, got %q", got)
	}
}
