// Command widgetkit renders, previews and publishes the demo commerce
// widgets.
package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/widgetkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	errors.DetectColors(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			fmt.Fprintln(os.Stderr, e.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "widgetkit",
		Short: "Embeddable commerce widgets on a virtual tree",
		Long: `widgetkit renders product cards and a cart with a virtual tree
reconciliation engine.

  render   print the widgets as static HTML
  serve    run a live preview in the browser
  publish  upload a static snapshot to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file or project directory (default: search upwards from .)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	root.AddCommand(
		renderCmd(flags),
		serveCmd(flags),
		publishCmd(flags),
		versionCmd(),
	)
	return root
}
