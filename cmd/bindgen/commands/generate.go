package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/config"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/schema"
	"github.com/teranos/bindgen/swift"
)

var (
	generateOutput     string
	generateBase       string
	generateConfigFile string
	generateWatch      bool
)

// GenerateCmd generates Swift bindings for one schema graph.
var GenerateCmd = &cobra.Command{
	Use:   "generate <schema.json>",
	Short: "Generate Swift bindings for a schema graph",
	Long: `Generate the Swift binding artifacts for a resolved schema graph.

Three files are written per compilation unit: the declaration header, the
Objective-C++ implementation, and the Swift accessor surface. Unsupported
schema constructs (unions, fixed-length arrays, non-scalar keys) fail the
whole run; no partial output is written.

Examples:
  bindgen generate monster.json
  bindgen generate monster.json --output gen/ --base monster
  bindgen generate monster.json --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default: from config)")
	GenerateCmd.Flags().StringVarP(&generateBase, "base", "b", "", "Artifact base name (default: schema file name)")
	GenerateCmd.Flags().StringVarP(&generateConfigFile, "config", "c", "", "TOML config file")
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever the schema file changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	schemaPath := args[0]

	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if generateOutput != "" {
		conf.OutputDir = generateOutput
	}
	if generateBase != "" {
		conf.BaseName = generateBase
	}
	if conf.BaseName == "" {
		name := filepath.Base(schemaPath)
		conf.BaseName = strings.TrimSuffix(name, filepath.Ext(name))
	}

	if err := generateOnce(schemaPath, conf); err != nil {
		return err
	}
	if generateWatch {
		return watchSchema(schemaPath, conf)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if generateConfigFile != "" {
		return config.LoadFromFile(generateConfigFile)
	}
	return config.Load()
}

func generateOnce(schemaPath string, conf *config.Config) error {
	s, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}

	gen := swift.NewGenerator(conf)
	artifacts, err := gen.Generate(s)
	if err != nil {
		var unsupportedErr *swift.UnsupportedTypeError
		if errors.As(err, &unsupportedErr) {
			return errors.WithHint(err, "unions, fixed-length arrays, and non-scalar keys have no swift encoding; remove the construct or exclude the definition")
		}
		return err
	}

	if err := os.MkdirAll(conf.OutputDir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", conf.OutputDir)
	}
	if err := artifacts.Save(conf.OutputDir); err != nil {
		return err
	}

	logger.Infow("generated bindings",
		"language", gen.Language(),
		"structs", len(s.Structs),
		"header", artifacts.Header.Name,
		"impl", artifacts.Impl.Name,
		"accessor", artifacts.Accessor.Name,
		"output", conf.OutputDir)
	return nil
}

// watchSchema blocks, regenerating on every write to the schema file. A
// failed regeneration is logged and the watch continues; editors often save
// through intermediate states.
func watchSchema(schemaPath string, conf *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	// Watch the directory: most editors replace the file on save, which
	// would drop a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(schemaPath)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(schemaPath))
	}
	logger.Infow("watching schema", "path", schemaPath)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(schemaPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := generateOnce(schemaPath, conf); err != nil {
				logger.Errorw("regeneration failed", "error", err)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("watch error", "error", watchErr)
		}
	}
}
