package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/widgetkit/internal/publish"
	"github.com/vango-dev/widgetkit/pkg/frame"
)

func publishCmd(flags *globalFlags) *cobra.Command {
	var (
		bucket string
		prefix string
		name   string
		add    []string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a static snapshot to S3",
		Long: `Render the widgets and upload the page to an S3 bucket.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN. Set publish.endpoint and publish.pathStyle in the
config to use an S3 compatible store.

Examples:
  widgetkit publish --bucket widgets
  widgetkit publish --bucket widgets --prefix embed --name shop.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if cmd.Flags().Changed("prefix") {
				cfg.Publish.Prefix = prefix
			}
			if err := cfg.Validate(); err != nil {
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

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			p := publish.New(publish.NewClient(cfg.Publish), cfg.Publish.Bucket, cfg.Publish.Prefix,
				publish.WithLogger(logger))
			key, err := p.PublishDocument(ctx, a.doc, name, cfg.Name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published s3://%s/%s\n", cfg.Publish.Bucket, key)
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from config)")
	cmd.Flags().StringVar(&name, "name", "index.html", "Object name under the prefix")
	cmd.Flags().StringArrayVar(&add, "add", nil, "Add a product to the cart before publishing (repeatable)")
	return cmd
}
