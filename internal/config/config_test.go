package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/assets/images", "/assets/images"},
		{"single trailing slash", "/assets/images/", "/assets/images"},
		{"multiple trailing slashes", "/assets/images///", "/assets/images"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{" PNG", ".jpg", "jpg", "", "WebP ", ".Avif"})
	want := []string{"png", "jpg", "webp", "avif"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeExtensions = %v, want %v", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"webp", FormatWebP, false},
		{"AVIF", FormatAVIF, false},
		{" jpg ", FormatJPG, false},
		{"jpeg", FormatJPEG, false},
		{"png", FormatPNG, false},
		{"skip", FormatSkip, false},
		{"gif", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfig) {
				t.Errorf("ParseFormat(%q) error %v does not wrap ErrConfig", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_TargetFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"webp is valid", FormatWebP, false},
		{"skip is valid", FormatSkip, false},
		{"upper case is normalized", "PNG", false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "tiff", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip path requirement
			cfg.TargetFormat = tt.format
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfig) {
				t.Errorf("Validate() error %v does not wrap ErrConfig", err)
			}
		})
	}
}

func TestValidate_ClampsQuality(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{80, 80},
		{100, 100},
		{250, 100},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.CheckOnly = true
		cfg.Quality = tt.in
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate(): %v", err)
		}
		if cfg.Quality != tt.want {
			t.Errorf("Quality %d normalized to %d, want %d", tt.in, cfg.Quality, tt.want)
		}
	}
}

func TestValidate_NormalizesExtensionsAndWidth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.Extensions = []string{"PNG", ".JPG"}
	cfg.MaxWidth = -10
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{"png", "jpg"}) {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
	if cfg.MaxWidth != 0 {
		t.Errorf("MaxWidth = %d, want 0", cfg.MaxWidth)
	}

	cfg.Extensions = []string{" ", "."}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail with no usable extensions")
	}
}

func TestValidate_RequiresPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir = ""
	cfg.OutputDir = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when paths are empty and CheckOnly is false")
	}

	cfg.InputDir = "/in"
	cfg.OutputDir = "/out"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidate_CheckOnlySkipsPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should pass with empty paths when CheckOnly is true, got: %v", err)
	}
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		wantErr bool
	}{
		{"separate directories", "/assets/images", "/assets/optimized", false},
		{"output equals input", "/assets/images", "/assets/images", true},
		{"output inside input", "/assets/images", "/assets/images/out", true},
		{"output is parent of input", "/assets/images/sub", "/assets/images", false},
		{"similar prefix not nested", "/assets/images", "/assets/images-optimized", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ValidatePaths(tt.input, tt.output)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaths(%q, %q) error = %v, wantErr %v",
					tt.input, tt.output, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TargetFormat != FormatWebP {
		t.Errorf("default TargetFormat = %q, want %q", cfg.TargetFormat, FormatWebP)
	}
	if cfg.Quality != 80 {
		t.Errorf("default Quality = %d, want 80", cfg.Quality)
	}
	if cfg.MaxWidth != 1920 {
		t.Errorf("default MaxWidth = %d, want 1920", cfg.MaxWidth)
	}
	if !cfg.Overwrite {
		t.Error("default Overwrite should be true")
	}
	if cfg.Lossless {
		t.Error("default Lossless should be false")
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
	if !reflect.DeepEqual(cfg.Extensions, DefaultExtensions) {
		t.Errorf("default Extensions = %v", cfg.Extensions)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pixmaster.yaml")
	content := `input_dir: public/assets/images/
output_dir: public/assets/images-optimized
extensions: [png, JPG]
format: avif
quality: 55
max_width: 1280
overwrite: false
timeout: 45s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.InputDir != "public/assets/images" {
		t.Errorf("InputDir = %q", cfg.InputDir)
	}
	if cfg.OutputDir != "public/assets/images-optimized" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.TargetFormat != FormatAVIF {
		t.Errorf("TargetFormat = %q", cfg.TargetFormat)
	}
	if cfg.Quality != 55 || cfg.MaxWidth != 1280 || cfg.Overwrite {
		t.Errorf("Quality/MaxWidth/Overwrite = %d/%d/%v", cfg.Quality, cfg.MaxWidth, cfg.Overwrite)
	}
	if cfg.FileTimeout != 45*time.Second {
		t.Errorf("FileTimeout = %s", cfg.FileTimeout)
	}
	// Keys absent from the file keep their defaults.
	if !cfg.ShowFileStats || cfg.Lossless {
		t.Error("unset keys should keep defaults")
	}
}

func TestLoadFile_BadFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("format: bmp\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); !errors.Is(err, ErrConfig) {
		t.Errorf("LoadFile error = %v, want ErrConfig", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PIXMASTER_FORMAT":     "png",
		"PIXMASTER_QUALITY":    "90",
		"PIXMASTER_MAX_WIDTH":  "640",
		"PIXMASTER_OVERWRITE":  "false",
		"PIXMASTER_LOSSLESS":   "true",
		"PIXMASTER_EXTENSIONS": "png,gif",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	if err := applyEnv(&cfg, lookup); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if cfg.TargetFormat != FormatPNG || cfg.Quality != 90 || cfg.MaxWidth != 640 {
		t.Errorf("got format=%q quality=%d width=%d", cfg.TargetFormat, cfg.Quality, cfg.MaxWidth)
	}
	if cfg.Overwrite || !cfg.Lossless {
		t.Errorf("got overwrite=%v lossless=%v", cfg.Overwrite, cfg.Lossless)
	}
	if !reflect.DeepEqual(NormalizeExtensions(cfg.Extensions), []string{"png", "gif"}) {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
}

func TestApplyEnv_BadBool(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "PIXMASTER_DRY_RUN" {
			return "maybe", true
		}
		return "", false
	}
	cfg := DefaultConfig()
	if err := applyEnv(&cfg, lookup); !errors.Is(err, ErrConfig) {
		t.Errorf("applyEnv error = %v, want ErrConfig", err)
	}
}
