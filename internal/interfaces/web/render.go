package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"time"

	"github.com/riskibarqy/player-scout/internal/domain/player"
	"github.com/riskibarqy/player-scout/internal/platform/format"
	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageLogin   = "login.html"
	pageIndex   = "index.html"
	pageProfile = "player_profile.html"
	pageError   = "error.html"
)

// Renderer executes page templates into pooled buffers so a failed render
// never leaves a half-written response.
type Renderer struct {
	pages map[string]*template.Template
	now   func() time.Time
}

func NewRenderer(now func() time.Time) (*Renderer, error) {
	if now == nil {
		now = time.Now
	}
	r := &Renderer{
		pages: make(map[string]*template.Template, 4),
		now:   now,
	}

	for _, page := range []string{pageLogin, pageIndex, pageProfile, pageError} {
		tmpl, err := template.New(page).
			Funcs(r.funcs()).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(ctx context.Context, w http.ResponseWriter, status int, page string, data any) error {
	_, span := startSpan(ctx, "web.Renderer.Render")
	defer span.End()

	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := tmpl.ExecuteTemplate(buf, "layout", data); err != nil {
		return fmt.Errorf("execute template %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"format_currency": formatCurrencyValue,
		"format_date":     formatDateValue,
		"deref":           derefString,
		"player_age": func(p player.Player) string {
			if age, ok := p.CalculatedAge(r.now()); ok {
				return fmt.Sprintf("%d", age)
			}
			return format.NotAvailable
		},
		"contract_end": func(p player.Player) string {
			if end, ok := p.ContractEnd(); ok {
				return end.Format("02/01/2006")
			}
			return format.NotAvailable
		},
		"sorted_keys": sortedKeys,
	}
}

func formatCurrencyValue(v any) string {
	switch typed := v.(type) {
	case player.MarketValue:
		return format.FormatCurrency(typed.Display())
	case string:
		return format.FormatCurrency(typed)
	case *string:
		return format.FormatCurrency(derefString(typed))
	case float64:
		return format.FormatAmount(typed)
	default:
		return format.NotAvailable
	}
}

func formatDateValue(v any) string {
	switch typed := v.(type) {
	case string:
		return format.FormatDate(typed)
	case *string:
		return format.FormatDate(derefString(typed))
	default:
		return format.NotAvailable
	}
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
