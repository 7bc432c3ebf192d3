package globals

import "github.com/spf13/cobra"

// ResourceFlags holds flags for list and lookup commands.
type ResourceFlags struct {
	Application string
	Search      string
	Limit       int
}

// ParseResources extracts resource flags from a command.
// The command must have had AddResourceFlags called on it, otherwise this will panic.
func ParseResources(cmd *cobra.Command) *ResourceFlags {
	return &ResourceFlags{
		Application: mustGetString(cmd, "app"),
		Search:      mustGetString(cmd, "search"),
		Limit:       mustGetInt(cmd, "limit"),
	}
}

// AddResourceFlags adds resource-specific flags to a command.
func AddResourceFlags(cmd *cobra.Command) *ResourceFlags {
	flags := &ResourceFlags{}

	cmd.Flags().StringVarP(&flags.Application, "app", "a", "",
		"Restrict to one app/modal")
	cmd.Flags().StringVarP(&flags.Search, "search", "s", "",
		"Case-insensitive substring to filter by")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}

// Apply filters names by the search term and trims them to the limit.
func (f *ResourceFlags) Apply(names []string, filter func(query string, names []string) []string) []string {
	if f.Search != "" {
		names = filter(f.Search, names)
	}
	if f.Limit > 0 && len(names) > f.Limit {
		names = names[:f.Limit]
	}
	return names
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
