package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-brandpdf/internal/yamlutil"
)

type testBrand struct {
	Name   string `yaml:"name"`
	Header string `yaml:"header"`
	Colors struct {
		Primary string `yaml:"primary"`
	} `yaml:"colors"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses YAML (and JSON) into Go structs
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("name: Acme\nheader: Engineering\ncolors:\n  primary: \"#112233\""),
			dest: &testBrand{},
			check: func(t *testing.T, v any) {
				b := v.(*testBrand)
				if b.Name != "Acme" {
					t.Errorf("Name = %q, want %q", b.Name, "Acme")
				}
				if b.Colors.Primary != "#112233" {
					t.Errorf("Primary = %q, want %q", b.Colors.Primary, "#112233")
				}
			},
		},
		{
			name: "JSON input parses",
			data: []byte(`{"name": "Acme", "colors": {"primary": "#000"}}`),
			dest: &testBrand{},
			check: func(t *testing.T, v any) {
				b := v.(*testBrand)
				if b.Name != "Acme" || b.Colors.Primary != "#000" {
					t.Errorf("parsed = %+v", b)
				}
			},
		},
		{
			name: "unknown fields tolerated",
			data: []byte("name: Acme\nfutureField: 42"),
			dest: &testBrand{},
			check: func(t *testing.T, v any) {
				if b := v.(*testBrand); b.Name != "Acme" {
					t.Errorf("Name = %q", b.Name)
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testBrand{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			tt.check(t, tt.dest)
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalInvalidSyntax
// ---------------------------------------------------------------------------

func TestUnmarshalInvalidSyntax(t *testing.T) {
	t.Parallel()

	err := yamlutil.Unmarshal([]byte("name: [unclosed"), &testBrand{})
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "yamlutil:") {
		t.Errorf("err %q missing package prefix", err)
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	if err := yamlutil.UnmarshalStrict([]byte("name: x\nbogus: y"), &testBrand{}); err == nil {
		t.Error("expected error for unknown field in strict mode")
	}
	if err := yamlutil.UnmarshalStrict([]byte("name: x"), &testBrand{}); err != nil {
		t.Errorf("UnmarshalStrict: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestInputTooLarge
// ---------------------------------------------------------------------------

func TestInputTooLarge(t *testing.T) {
	t.Parallel()

	big := []byte("name: " + strings.Repeat("a", yamlutil.MaxInputSize))
	if err := yamlutil.Unmarshal(big, &testBrand{}); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("err = %v, want ErrInputTooLarge", err)
	}
}
