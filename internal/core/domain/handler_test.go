package domain_test

import (
	"errors"
	"testing"

	"clientfn.dev/clientfn/internal/core/domain"
)

func TestFuncValidate(t *testing.T) {
	tests := []struct {
		name    string
		source  domain.Func
		wantErr bool
	}{
		{
			name:   "arrow function",
			source: `(event) => { console.log(event); }`,
		},
		{
			name:   "arrow function without parens",
			source: `event => console.log(event)`,
		},
		{
			name:   "async arrow function",
			source: `async (event) => { await fetch("/api"); }`,
		},
		{
			name:   "function keyword",
			source: `function (el, event) { el.remove(); }`,
		},
		{
			name:   "named function",
			source: `function toggleMenu(el) { el.classList.toggle("open"); }`,
		},
		{
			name:   "async named function",
			source: `async function save(el, event) { await fetch("/save"); }`,
		},
		{
			name:   "leading whitespace",
			source: "\n\t(event) => event.preventDefault()",
		},
		{
			name:    "object literal",
			source:  `{ handler: true }`,
			wantErr: true,
		},
		{
			name:    "plain statement",
			source:  `console.log("hi")`,
			wantErr: true,
		},
		{
			name:    "empty source",
			source:  ``,
			wantErr: true,
		},
		{
			name:    "whitespace only",
			source:  "  \n ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrNotFunction) {
					t.Errorf("Expected ErrNotFunction, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected valid function, got %v", err)
			}
		})
	}
}

func TestFuncDeclaredName(t *testing.T) {
	tests := []struct {
		name   string
		source domain.Func
		want   string
	}{
		{"named function", `function toggleMenu(el) {}`, "toggleMenu"},
		{"async named function", `async function save(el) {}`, "save"},
		{"anonymous function", `function (el) {}`, ""},
		{"arrow function", `(el) => {}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.source.DeclaredName(); got != tt.want {
				t.Errorf("DeclaredName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandlerValidate(t *testing.T) {
	t.Run("valid handler", func(t *testing.T) {
		h := domain.Handler{
			Name:   "toggleMenu",
			Source: `(el) => el.classList.toggle("open")`,
			File:   domain.NewInternedString("app/views/menu.ts"),
		}
		if err := h.Validate(); err != nil {
			t.Errorf("Expected valid handler, got %v", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		h := domain.Handler{Source: `(el) => {}`}
		if !errors.Is(h.Validate(), domain.ErrEmptyName) {
			t.Error("Expected ErrEmptyName")
		}
	})

	t.Run("source is not a function", func(t *testing.T) {
		h := domain.Handler{Name: "broken", Source: `42`}
		if !errors.Is(h.Validate(), domain.ErrNotFunction) {
			t.Error("Expected ErrNotFunction")
		}
	})
}

func TestInvocationString(t *testing.T) {
	got := domain.InvocationString("toggleMenu_2f7a9c")
	want := "handlers.toggleMenu_2f7a9c(this, event)"
	if got != want {
		t.Errorf("InvocationString() = %q, want %q", got, want)
	}

	h := domain.Handler{Name: "toggleMenu", ID: "toggleMenu_2f7a9c"}
	if h.Invocation() != want {
		t.Errorf("Invocation() = %q, want %q", h.Invocation(), want)
	}
}

func TestHandlerFileName(t *testing.T) {
	h := domain.Handler{Name: "save", ID: "save_1b2c"}
	if got := h.FileName(); got != "save_1b2c.js" {
		t.Errorf("FileName() = %q, want %q", got, "save_1b2c.js")
	}
}

func TestImportLine(t *testing.T) {
	got := domain.ImportLine("toggleMenu", "toggleMenu_2f7a9c", "js")
	want := `import { default as toggleMenu } from "./toggleMenu_2f7a9c.js";`
	if got != want {
		t.Errorf("ImportLine() = %q, want %q", got, want)
	}
}
