package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rulegen/rulegen/storage"
)

// Profile describes one rules-based generator: where its word list, rule
// file, and database live, how its tables are named, and how lookup keys map
// onto word-list columns.
type Profile struct {
	// DataPrefix names the data files: <data_dir>/<data_prefix>.csv, .rules,
	// and .db, unless the individual paths below override them.
	DataPrefix string `yaml:"data_prefix"`
	DataDir    string `yaml:"data_dir"`
	CSVFile    string `yaml:"csv_file"`
	RuleFile   string `yaml:"rule_file"`
	DBFile     string `yaml:"db_file"`

	RootsTable        string `yaml:"roots_table"`
	RootsIDColumn     string `yaml:"roots_id_column"`
	ResultsTable      string `yaml:"results_table"`
	ResultsIDColumn   string `yaml:"results_id_column"`
	ResultsDataColumn string `yaml:"results_data_column"`

	// Lookups remaps lookup keys that are not word-list columns themselves.
	// A technobabble profile maps the pseudo-column Object onto
	// PatientOrObject restricted to rows where IsPatientOnly = 0.
	Lookups map[string]Lookup `yaml:"lookups"`
}

type Lookup struct {
	Column string `yaml:"column"`
	Filter string `yaml:"filter"`
}

// LoadProfile reads a YAML profile, applies defaults, and validates it.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read the profile %v: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("cannot parse the profile %v: %w", path, err)
	}

	p.applyDefaults()
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %v: %w", path, err)
	}
	return &p, nil
}

func (p *Profile) applyDefaults() {
	if p.DataDir == "" {
		p.DataDir = "."
	}
	if p.DataPrefix != "" {
		if p.CSVFile == "" {
			p.CSVFile = filepath.Join(p.DataDir, p.DataPrefix+".csv")
		}
		if p.RuleFile == "" {
			p.RuleFile = filepath.Join(p.DataDir, p.DataPrefix+".rules")
		}
		if p.DBFile == "" {
			p.DBFile = filepath.Join(p.DataDir, p.DataPrefix+".db")
		}
	}

	def := storage.DefaultConfig("")
	if p.RootsTable == "" {
		p.RootsTable = def.RootsTable
	}
	if p.RootsIDColumn == "" {
		p.RootsIDColumn = def.RootsIDColumn
	}
	if p.ResultsTable == "" {
		p.ResultsTable = def.ResultsTable
	}
	if p.ResultsIDColumn == "" {
		p.ResultsIDColumn = def.ResultsIDColumn
	}
	if p.ResultsDataColumn == "" {
		p.ResultsDataColumn = def.ResultsDataColumn
	}
}

func (p *Profile) validate() error {
	if p.CSVFile == "" || p.RuleFile == "" || p.DBFile == "" {
		return fmt.Errorf("either data_prefix or all of csv_file, rule_file, and db_file must be set")
	}
	for key, l := range p.Lookups {
		if l.Column == "" {
			return fmt.Errorf("lookup %v needs a column", key)
		}
	}
	return nil
}

func (p *Profile) storageConfig() *storage.Config {
	cfg := storage.DefaultConfig(p.DBFile)
	cfg.RootsTable = p.RootsTable
	cfg.RootsIDColumn = p.RootsIDColumn
	cfg.ResultsTable = p.ResultsTable
	cfg.ResultsIDColumn = p.ResultsIDColumn
	cfg.ResultsDataColumn = p.ResultsDataColumn
	return cfg
}
