// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"errors"
	"testing"
)

func TestParseSpecifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Specifier
		wantErr bool
	}{
		{in: "npm:cowsay", want: Specifier{Name: "cowsay"}},
		{in: "npm:cowsay@1.5.0", want: Specifier{Name: "cowsay", Version: "1.5.0"}},
		{in: "npm:typescript@5.3.3/tsc", want: Specifier{Name: "typescript", Version: "5.3.3", Bin: "tsc"}},
		{in: "npm:typescript/tsserver", want: Specifier{Name: "typescript", Bin: "tsserver"}},
		{in: "npm:@angular/cli", want: Specifier{Name: "@angular/cli"}},
		{in: "npm:@angular/cli@17.0.0/ng", want: Specifier{Name: "@angular/cli", Version: "17.0.0", Bin: "ng"}},
		{in: "npm:@types/node@^20", want: Specifier{Name: "@types/node", Version: "^20"}},
		{in: "cowsay", wantErr: true},
		{in: "npm:", wantErr: true},
		{in: "npm:@scope", wantErr: true},
		{in: "npm:@/x", wantErr: true},
		{in: "npm:cowsay@", wantErr: true},
		{in: "npm:cowsay/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSpecifier(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSpecifier) {
					t.Fatalf("ParseSpecifier(%q) error = %v, want ErrInvalidSpecifier", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpecifier(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSpecifier(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestPackageNv_String(t *testing.T) {
	t.Parallel()

	if got := (PackageNv{Name: "cowsay", Version: "1.5.0"}).String(); got != "cowsay@1.5.0" {
		t.Errorf("String() = %q", got)
	}
	if got := (PackageNv{Name: "cowsay"}).String(); got != "cowsay" {
		t.Errorf("String() without version = %q", got)
	}
}

func TestUnscopedName(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"cowsay":       "cowsay",
		"@angular/cli": "cli",
		"@broken":      "@broken",
	} {
		if got := UnscopedName(in); got != want {
			t.Errorf("UnscopedName(%q) = %q, want %q", in, got, want)
		}
	}
}
