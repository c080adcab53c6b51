package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/widgetkit/pkg/frame"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		out   string
		title string
		add   []string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the widgets as static HTML",
		Long: `Render every product card and the cart once and print the
resulting page.

Examples:
  widgetkit render
  widgetkit render --add tee --add mug -o cart.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log, cmd.ErrOrStderr())

			frames := frame.NewManual()
			a, err := newApp(cfg, appOptions{frames: frames, logger: logger})
			if err != nil {
				return err
			}
			if err := a.addToCart(add); err != nil {
				return err
			}
			if err := a.settle(frames); err != nil {
				return err
			}

			if title == "" {
				title = cfg.Name
			}
			html, err := a.snapshot(title)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			return os.WriteFile(out, html, 0644)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the page to a file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "Page title (default: config name)")
	cmd.Flags().StringArrayVar(&add, "add", nil, "Add a product to the cart before rendering (repeatable)")
	return cmd
}
