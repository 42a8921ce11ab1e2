package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
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
		{"unknown action", CodeUnknownAction, "Unknown action", CategoryRuntime},
		{"render loop", CodeRenderLoop, "Render loop limit exceeded", CategoryRuntime},
		{"config", CodeInvalidConfig, "Invalid configuration", CategoryConfig},
		{"unregistered", "S999", "Unknown error", ""},
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
		})
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeUnknownAction).WithDetail("no action named %q", "nope")
	wrapped := fmt.Errorf("invoke: %w", err)

	if !stderrors.Is(wrapped, ErrUnknownAction) {
		t.Fatal("errors.Is should match on code through wrapping")
	}
	if stderrors.Is(wrapped, ErrRenderLoop) {
		t.Fatal("errors.Is matched a different code")
	}
}

func TestErrorString(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := New(CodeFetchFailed).WithDetail("GET /quote").Wrap(cause)

	want := "S005: Fetch failed: GET /quote: dial tcp: refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeFetchFailed) != nil {
		t.Fatal("FromError(nil) should be nil")
	}
	orig := New(CodeRootClosed)
	if FromError(orig, CodeFetchFailed) != orig {
		t.Fatal("FromError should return an existing *Error unchanged")
	}
	plain := stderrors.New("x")
	if got := FromError(plain, CodeFetchFailed); got.Code != CodeFetchFailed || got.Wrapped != plain {
		t.Fatalf("FromError() = %+v", got)
	}
}

func TestFormatWithoutColors(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New(CodeRenderLoop).WithSuggestion("Stop writing state from effects").Format()
	for _, want := range []string{"ERROR S002: Render loop limit exceeded", "Hint: Stop writing state from effects", "Flushing kept producing"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() emitted ANSI codes with colors disabled")
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New(CodeUnknownAction).WithDetail("boom").Wrap(stderrors.New("cause"))
	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal error: %v", jerr)
	}
	var got map[string]string
	if jerr := json.Unmarshal(data, &got); jerr != nil {
		t.Fatalf("Unmarshal error: %v", jerr)
	}
	if got["code"] != "S001" || got["detail"] != "boom" || got["cause"] != "cause" {
		t.Errorf("json = %s", data)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("wrapped: %w", New(CodeRootClosed)))
	if !strings.Contains(buf.String(), "S003") {
		t.Errorf("PrintError() = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("PrintError() = %q", buf.String())
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
}
