package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// templateFile is the YAML shape of the quick booking template catalog.
type templateFile struct {
	Templates []templateEntry `yaml:"templates"`
}

type templateEntry struct {
	Name             string `yaml:"name"`
	DestCompany      string `yaml:"dest_company"`
	SrcJournalCode   string `yaml:"src_journal_code"`
	DstJournalCode   string `yaml:"dst_journal_code"`
	SrcExpenseCode   string `yaml:"src_expense_code"`
	SrcIntercoARCode string `yaml:"src_interco_ar_code"`
	DstExpenseCode   string `yaml:"dst_expense_code"`
	DstIntercoAPCode string `yaml:"dst_interco_ap_code"`
}

// LoadTemplates reads the quick booking template catalog from a YAML file.
// An empty path yields an empty catalog.
func LoadTemplates(path string) (map[string]usecase.Template, error) {
	templates := map[string]usecase.Template{}
	if path == "" {
		return templates, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse templates file: %w", err)
	}

	for _, entry := range file.Templates {
		if entry.Name == "" {
			return nil, fmt.Errorf("template without a name in %s", path)
		}
		if entry.DestCompany == "" {
			return nil, fmt.Errorf("template %q has no dest_company", entry.Name)
		}
		if _, ok := templates[entry.Name]; ok {
			return nil, fmt.Errorf("duplicate template name %q", entry.Name)
		}

		templates[entry.Name] = usecase.Template{
			Name:             entry.Name,
			DestCompany:      entry.DestCompany,
			SrcJournalCode:   entry.SrcJournalCode,
			DstJournalCode:   entry.DstJournalCode,
			SrcExpenseCode:   entry.SrcExpenseCode,
			SrcIntercoARCode: entry.SrcIntercoARCode,
			DstExpenseCode:   entry.DstExpenseCode,
			DstIntercoAPCode: entry.DstIntercoAPCode,
		}
	}

	return templates, nil
}

// ResolverSettings builds the fallback discovery settings from configuration,
// keeping the built-in defaults for anything left empty.
func (c *Config) ResolverSettings(templates map[string]usecase.Template) usecase.ResolverSettings {
	settings := usecase.DefaultResolverSettings()

	if len(c.SrcIntercoARCodes) > 0 {
		settings.SrcIntercoARCodes = c.SrcIntercoARCodes
	}
	if len(c.DstIntercoAPCodes) > 0 {
		settings.DstIntercoAPCodes = c.DstIntercoAPCodes
	}
	if len(c.ExpenseCodes) > 0 {
		settings.ExpenseCodes = c.ExpenseCodes
	}
	if templates != nil {
		settings.Templates = templates
	}

	return settings
}
