package dataset

import (
	"bytes"
	"embed"
	"sync"

	"github.com/agentstation/fieldscope/pkg/constants"
)

//go:embed sample/*.csv
var sampleFS embed.FS

var (
	sampleOnce   sync.Once
	sampleTables *Tables
)

// SampleSearchSource serves the built-in search-field table.
func SampleSearchSource() Source {
	return BytesSource{Label: "sample:" + constants.DefaultSearchData, Data: mustSample(constants.DefaultSearchData)}
}

// SampleStandardsSource serves the built-in standards table.
func SampleStandardsSource() Source {
	return BytesSource{Label: "sample:" + constants.DefaultStandardsData, Data: mustSample(constants.DefaultStandardsData)}
}

// Sample returns the built-in tables: twelve field records across seven
// applications and sixteen evaluations of two standards. Callers get their
// own copy.
func Sample() *Tables {
	sampleOnce.Do(func() {
		fields, err := ParseSearch(bytes.NewReader(mustSample(constants.DefaultSearchData)), "sample")
		if err != nil {
			panic("dataset: embedded search sample: " + err.Error())
		}
		standards, err := ParseStandards(bytes.NewReader(mustSample(constants.DefaultStandardsData)), "sample")
		if err != nil {
			panic("dataset: embedded standards sample: " + err.Error())
		}
		sampleTables = &Tables{Fields: fields, Standards: standards}
	})
	return sampleTables.Clone()
}

func mustSample(name string) []byte {
	data, err := sampleFS.ReadFile("sample/" + name)
	if err != nil {
		panic("dataset: missing embedded sample " + name)
	}
	return data
}
