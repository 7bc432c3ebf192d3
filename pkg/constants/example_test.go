package constants_test

import (
	"fmt"
	"net/http"

	"github.com/agentstation/fieldscope/pkg/constants"
)

// Example_timeouts demonstrates timeout constants
func Example_timeouts() {
	client := &http.Client{
		Timeout: constants.DefaultHTTPTimeout,
	}
	fmt.Printf("HTTP timeout: %v\n", client.Timeout)
	fmt.Printf("Load timeout: %v\n", constants.LoadTimeout)
	// Output:
	// HTTP timeout: 30s
	// Load timeout: 1m0s
}

// Example_columns demonstrates the dataset column headers
func Example_columns() {
	fmt.Println(constants.ColumnApplication, "|", constants.ColumnSearch, "|", constants.ColumnAllowsWildcards)
	fmt.Println(constants.DefaultSearchData, constants.DefaultStandardsData)
	fmt.Println("candidates:", constants.MaxCandidates)
	// Output:
	// App/Modal | Search | Allows Wildcards?
	// search-data.csv standards-data.csv
	// candidates: 10
}
