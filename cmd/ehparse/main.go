// Command ehparse decodes saved E-Hentai pages from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/slinet/ehparse/internal/config"
	"github.com/slinet/ehparse/internal/logger"
	"github.com/slinet/ehparse/pkg/parser"
)

var (
	configPath string
	format     string

	cfg *config.Config
	log *zap.Logger
	p   *parser.Parser
)

var rootCmd = &cobra.Command{
	Use:   "ehparse",
	Short: "Decode saved E-Hentai pages into structured data",
	Long: `ehparse turns HTML saved from the gallery site into JSON or YAML.

Document commands read the page from a file argument, or from stdin when
the argument is "-" or missing:

  ehparse list front.html --query 'language:english$'
  curl -s ... | ehparse detail`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		log, err = logger.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		p, err = parser.New(cfg.Parser.Options())
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "o", "json", "output format: json or yaml")

	rootCmd.AddCommand(documentCommands()...)
	rootCmd.AddCommand(urlCmd, categoryCmd, spoolCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// emit writes v to w in the selected format.
func emit(w io.Writer, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

// readInput returns the named file, or stdin for "-" and no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty document")
	}
	return string(data), nil
}
