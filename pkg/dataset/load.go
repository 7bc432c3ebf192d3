// Package dataset fetches and decodes the search-field and standards tables.
//
// Both tables are CSV with a header row. Cells are normalized once, here:
// downstream code sees typed booleans and compliance values, never raw
// spreadsheet strings.
package dataset

import (
	"context"
	stderrors "errors"
	"io"
	"slices"
	"sync"

	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/logging"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Dataset names used in logs and LoadError.
const (
	SearchDataset    = "search"
	StandardsDataset = "standards"
)

// Origin records where loaded tables came from.
type Origin string

const (
	// OriginSources means both tables came from their configured sources.
	OriginSources Origin = "sources"
	// OriginSample means the built-in sample is in use.
	OriginSample Origin = "sample"
)

// Tables is a loaded pair of tables.
type Tables struct {
	Fields    []lookup.FieldRecord    `json:"fields" yaml:"fields"`
	Standards []lookup.StandardRecord `json:"standards" yaml:"standards"`
}

// Clone returns a deep copy.
func (t *Tables) Clone() *Tables {
	if t == nil {
		return nil
	}
	return &Tables{Fields: slices.Clone(t.Fields), Standards: slices.Clone(t.Standards)}
}

// Engine builds a lookup engine over the tables.
func (t *Tables) Engine() *lookup.Engine {
	if t == nil {
		return lookup.NewEngine(nil, nil)
	}
	return lookup.NewEngine(t.Fields, t.Standards)
}

// Load fetches and decodes both tables concurrently. If either fails, Load
// returns the joined errors and no tables.
func Load(ctx context.Context, search, standards Source) (*Tables, error) {
	var (
		wg       sync.WaitGroup
		fields   []lookup.FieldRecord
		evals    []lookup.StandardRecord
		fieldErr error
		evalErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fields, fieldErr = loadOne(ctx, SearchDataset, search, ParseSearch)
	}()
	go func() {
		defer wg.Done()
		evals, evalErr = loadOne(ctx, StandardsDataset, standards, ParseStandards)
	}()
	wg.Wait()

	if err := stderrors.Join(fieldErr, evalErr); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Int("fields", len(fields)).
		Int("evaluations", len(evals)).
		Msg("Loaded datasets")

	return &Tables{Fields: fields, Standards: evals}, nil
}

// LoadWithFallback behaves like Load but substitutes the built-in sample
// for both tables when either fails. The failure is logged, never returned.
func LoadWithFallback(ctx context.Context, search, standards Source) (*Tables, Origin) {
	tables, err := Load(ctx, search, standards)
	if err == nil {
		return tables, OriginSources
	}

	logging.FromContext(ctx).Warn().
		Err(err).
		Msg("Could not load datasets, using built-in sample data")
	return Sample(), OriginSample
}

func loadOne[T any](ctx context.Context, dataset string, src Source, parse func(io.Reader, string) ([]T, error)) ([]T, error) {
	if src == nil {
		return nil, errors.WrapLoad(dataset, "", errors.NewValidationError("source", nil, "no source configured"))
	}

	ctx = logging.WithDataset(logging.WithSource(ctx, src.Name()), dataset)
	logging.FromContext(ctx).Debug().Msg("Opening dataset")

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, errors.WrapLoad(dataset, src.Name(), err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			logging.FromContext(ctx).Debug().Err(cerr).Msg("Closing dataset")
		}
	}()

	records, err := parse(rc, src.Name())
	if err != nil {
		return nil, errors.WrapLoad(dataset, src.Name(), err)
	}
	return records, nil
}
