package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aheinzel/account-intercompany-booking-button/internal/infrastructure/config"
)

const templatesYAML = `
templates:
  - name: rent
    dest_company: Beta GmbH
    src_journal_code: MISC
    dst_journal_code: MISC
    src_expense_code: "5400"
    src_interco_ar_code: "1460"
    dst_expense_code: "5400"
    dst_interco_ap_code: "3328"
  - name: it-services
    dest_company: Gamma GmbH
`

func writeTemplates(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write templates file: %v", err)
	}
	return path
}

func TestLoadTemplates(t *testing.T) {
	templates, err := config.LoadTemplates(writeTemplates(t, templatesYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}

	rent, ok := templates["rent"]
	if !ok {
		t.Fatalf("expected rent template to be loaded")
	}
	if rent.DestCompany != "Beta GmbH" || rent.SrcIntercoARCode != "1460" {
		t.Fatalf("unexpected rent template: %+v", rent)
	}

	it := templates["it-services"]
	if it.DestCompany != "Gamma GmbH" || it.SrcExpenseCode != "" {
		t.Fatalf("unexpected it-services template: %+v", it)
	}
}

func TestLoadTemplates_EmptyPath(t *testing.T) {
	templates, err := config.LoadTemplates("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 0 {
		t.Fatalf("expected empty catalog, got %d templates", len(templates))
	}
}

func TestLoadTemplates_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "templates:\n  - dest_company: Beta GmbH\n"},
		{"missing dest company", "templates:\n  - name: rent\n"},
		{"duplicate name", "templates:\n  - name: rent\n    dest_company: Beta GmbH\n  - name: rent\n    dest_company: Gamma GmbH\n"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.LoadTemplates(writeTemplates(t, tt.content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestResolverSettings(t *testing.T) {
	t.Setenv("SRC_INTERCO_AR_CODES", "9991")
	t.Setenv("EXPENSE_CODES", "5400,5410")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	settings := cfg.ResolverSettings(nil)

	if len(settings.SrcIntercoARCodes) != 1 || settings.SrcIntercoARCodes[0] != "9991" {
		t.Fatalf("expected configured AR codes, got %v", settings.SrcIntercoARCodes)
	}
	if len(settings.ExpenseCodes) != 2 {
		t.Fatalf("expected configured expense codes, got %v", settings.ExpenseCodes)
	}
	if len(settings.DstIntercoAPCodes) == 0 {
		t.Fatalf("expected default AP codes to survive")
	}
	if len(settings.ARNameHints) == 0 {
		t.Fatalf("expected default name hints to survive")
	}
}
