package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "runtime error",
			code:    "E001",
			wantMsg: "Lifecycle callback registered outside component context",
			wantCat: CategoryRuntime,
		},
		{
			name:    "hydration error",
			code:    "E040",
			wantMsg: "Render has no client fragment",
			wantCat: CategoryHydration,
		},
		{
			name:    "config error",
			code:    "E121",
			wantMsg: "Configuration not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestFeatherError_Error(t *testing.T) {
	err := New("E040")
	if got, want := err.Error(), "E040: Render has no client fragment"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.WithDetail("render 3")
	if got, want := err.Error(), "E040: Render has no client fragment (render 3)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &FeatherError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestFeatherError_Wrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := New("E041").Wrap(sentinel)

	if !Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}

	var fe *FeatherError
	if !As(error(err), &fe) || fe.Code != "E041" {
		t.Errorf("errors.As = %v, want code E041", fe)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should return nil")
	}

	coded := New("E100")
	if FromError(coded, "E120") != coded {
		t.Error("FromError should return existing FeatherError unchanged")
	}

	plain := stderrors.New("disk full")
	wrapped := FromError(plain, "E101")
	if wrapped.Code != "E101" || wrapped.Wrapped != plain {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E040").
		WithDetail("render 7 was built without a document").
		WithSuggestion("Pass a dom.Document in render.Options")

	out := err.Format()
	for _, want := range []string{
		"ERROR E040: Render has no client fragment",
		"render 7 was built without a document",
		"Hint: Pass a dom.Document in render.Options",
		"Learn more: https://feather.dev/docs/errors/E040",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormat_RegisteredDetail(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E002").Format()
	if !strings.Contains(out, "one more literal segment") {
		t.Errorf("Format() should fall back to the registered detail:\n%s", out)
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, stderrors.New("boom"))
	if !strings.Contains(buf.String(), "ERROR: boom") {
		t.Errorf("Print(plain) = %q", buf.String())
	}

	buf.Reset()
	Print(&buf, New("E100"))
	if !strings.Contains(buf.String(), "E100: Nothing to export") {
		t.Errorf("Print(coded) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 9)
	for _, line := range lines {
		if len(line) > 9 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
