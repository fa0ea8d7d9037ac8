package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rulegen/rulegen/derivation"
	rerr "github.com/rulegen/rulegen/error"
	"github.com/rulegen/rulegen/grammar"
	"github.com/rulegen/rulegen/spec"
	"github.com/rulegen/rulegen/storage"
)

// Fragment is one piece of a generated string. Column is empty when the text
// came from a string literal, otherwise it names the lookup key the text was
// drawn for.
type Fragment struct {
	Text   string
	Column string
}

// Postprocess rewrites the fragment list before it is joined; generators use
// it for domain-specific cleanup such as vowel elision at word seams.
type Postprocess func([]Fragment) []Fragment

// Generator produces random strings from a profile's rule file and word
// list. The rule file is parsed and validated lazily; the database is built
// on demand when the file does not exist.
type Generator struct {
	// Postprocess, when non-nil, runs over the fragments of every generated
	// string.
	Postprocess Postprocess

	profile *Profile
	store   *storage.Store
	rules   grammar.RuleSet
	logger  *slog.Logger
}

func New(profile *Profile) (*Generator, error) {
	store, err := storage.Open(profile.storageConfig())
	if err != nil {
		return nil, err
	}
	return &Generator{
		profile: profile,
		store:   store,
		logger:  slog.Default().With("component", "generator"),
	}, nil
}

func (g *Generator) Close() error {
	return g.store.Close()
}

// Rules parses and validates the profile's rule file on first use.
func (g *Generator) Rules() (grammar.RuleSet, error) {
	if g.rules != nil {
		return g.rules, nil
	}

	f, err := os.Open(g.profile.RuleFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open the rule file %v: %w", g.profile.RuleFile, err)
	}
	defer f.Close()

	root, err := spec.Parse(f)
	if err != nil {
		return nil, g.locate(err)
	}
	b := &grammar.RuleSetBuilder{
		AST: root,
	}
	rules, err := b.Build()
	if err != nil {
		return nil, g.locate(err)
	}
	g.rules = rules
	return rules, nil
}

// locate points a SpecError at the profile's rule file so the message can
// echo the offending line.
func (g *Generator) locate(err error) error {
	var specErr *rerr.SpecError
	if errors.As(err, &specErr) {
		specErr.FilePath = g.profile.RuleFile
		specErr.SourceName = g.profile.RuleFile
	}
	return err
}

// Rebuild recreates the database: the word list is imported into the roots
// table and every terminal string the rule set derives is stored in the
// results table.
func (g *Generator) Rebuild(ctx context.Context) error {
	rules, err := g.Rules()
	if err != nil {
		return err
	}
	headings, rows, err := storage.ReadRoots(g.profile.CSVFile)
	if err != nil {
		return err
	}
	return g.store.Rebuild(ctx, headings, rows, derivation.NewEnumerator(rules))
}

func (g *Generator) ensureDB(ctx context.Context) error {
	if _, err := os.Stat(g.profile.DBFile); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	g.logger.Info("database missing, building it", "path", g.profile.DBFile)
	return g.Rebuild(ctx)
}

// Generate produces one random string: it picks a stored terminal string
// uniformly at random, decodes it, substitutes a fresh random word-list value
// for each lookup (never reusing a row within one string), applies the
// postprocess hook, and joins the fragments.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	if err := g.ensureDB(ctx); err != nil {
		return "", err
	}

	format, err := g.store.RandomValue(ctx, storage.RandomQuery{
		Table:    g.profile.ResultsTable,
		Column:   g.profile.ResultsDataColumn,
		IDColumn: g.profile.ResultsIDColumn,
	})
	if err != nil {
		return "", err
	}

	tokens, err := spec.ParseTerminals(format)
	if err != nil {
		return "", fmt.Errorf("stored terminal string %q does not decode: %w", format, err)
	}

	avoider := storage.NewRepeatAvoider()
	fragments := make([]Fragment, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Kind {
		case spec.TokenKindLiteral:
			fragments = append(fragments, Fragment{Text: tok.Text})
		case spec.TokenKindDBLookup:
			column, filter := tok.Text, ""
			if l, ok := g.profile.Lookups[tok.Text]; ok {
				column, filter = l.Column, l.Filter
			}
			value, err := g.store.RandomValue(ctx, storage.RandomQuery{
				Table:    g.profile.RootsTable,
				Column:   column,
				IDColumn: g.profile.RootsIDColumn,
				Filter:   filter,
				Avoider:  avoider,
			})
			if err != nil {
				return "", err
			}
			fragments = append(fragments, Fragment{Text: value, Column: tok.Text})
		}
	}

	if g.Postprocess != nil {
		fragments = g.Postprocess(fragments)
	}

	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.Text)
	}
	return b.String(), nil
}
