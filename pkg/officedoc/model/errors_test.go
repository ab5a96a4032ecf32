package model

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"with detail", NewError(ErrXmlParse, nil, "unexpected element %s", "w:p"), "officedoc: XmlParse: unexpected element w:p"},
		{"without detail", &Error{Kind: ErrIo}, "officedoc: Io"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("zip: not a valid archive")
	err := NewError(ErrZipArchive, cause, "opening package")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIsKind(t *testing.T) {
	err := NewError(ErrMissingComponent, nil, "word/document.xml")
	wrapped := NewError(ErrRender, err, "rendering failed")

	if !IsKind(err, ErrMissingComponent) {
		t.Error("IsKind should match the error's own kind")
	}
	if IsKind(err, ErrRender) {
		t.Error("IsKind should not match an unrelated kind")
	}
	if !IsKind(wrapped, ErrRender) {
		t.Error("IsKind should match the outermost error's kind")
	}
}

func TestErrKind_String(t *testing.T) {
	if got := ErrEncrypted.String(); got != "Encrypted" {
		t.Errorf("String() = %q, want %q", got, "Encrypted")
	}
	if got := ErrKind(999).String(); got != "Unknown" {
		t.Errorf("String() for unrecognized kind = %q, want %q", got, "Unknown")
	}
}
