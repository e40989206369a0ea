// Package commands wires up the bindgen CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/version"
)

var jsonLogs bool

// RootCmd is the bindgen entry point.
var RootCmd = &cobra.Command{
	Use:   "bindgen",
	Short: "Generate language bindings from a resolved schema graph",
	Long: `bindgen turns a resolved schema type graph into language bindings.

The graph is produced by an external schema compiler and serialized as JSON;
bindgen derives surface names for every type in it and emits the declaration,
implementation, and accessor-language artifacts for the target language.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Initialize(jsonLogs)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	info := version.Get()
	RootCmd.Version = fmt.Sprintf("%s (%s)", info.Version, info.Short())
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")
	RootCmd.AddCommand(GenerateCmd)
	RootCmd.AddCommand(VersionCmd)
}
