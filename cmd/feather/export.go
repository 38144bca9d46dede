package main

import (
	"github.com/spf13/cobra"
	"github.com/vango-dev/feather/internal/config"
	"github.com/vango-dev/feather/internal/demo"
	"github.com/vango-dev/feather/pkg/export"
)

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		out       string
		bucket    string
		prefix    string
		region    string
		endpoint  string
		pathStyle bool
		todos     []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every page as static HTML",
		Long: `Render every page and write it to a directory, or upload it to an S3
bucket when --bucket (or export.bucket) is set.

"/" is written as index.html and "/about" as about/index.html.

Examples:
  feather export --out=dist
  feather export --bucket=my-site --prefix=v1 --region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			applyExportFlags(cfg, cmd, out, bucket, prefix, region, endpoint, pathStyle)

			logger := newLogger(cfg, cmd.ErrOrStderr())
			app, err := newApp(cfg, logger, nil, todos)
			if err != nil {
				return err
			}

			res, err := export.Export(cmd.Context(), newSink(cfg), pages(app), export.WithLogger(logger))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, loc := range res.Locations {
				info(w, "%s", loc)
			}
			success(w, "Exported %d pages (%d bytes)", len(res.Locations), res.Bytes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (default from config)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Upload to this S3 bucket instead of a directory")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&region, "region", "", "AWS region")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "S3-compatible endpoint URL")
	cmd.Flags().BoolVar(&pathStyle, "path-style", false, "Use path-style bucket addressing")
	cmd.Flags().StringArrayVar(&todos, "todo", nil, "Seed a todo (repeatable)")
	return cmd
}

func applyExportFlags(cfg *config.Config, cmd *cobra.Command, out, bucket, prefix, region, endpoint string, pathStyle bool) {
	if out != "" {
		cfg.Export.Output = out
	}
	if bucket != "" {
		cfg.Export.Bucket = bucket
	}
	if prefix != "" {
		cfg.Export.Prefix = prefix
	}
	if region != "" {
		cfg.Export.Region = region
	}
	if endpoint != "" {
		cfg.Export.Endpoint = endpoint
	}
	if cmd.Flags().Changed("path-style") {
		cfg.Export.PathStyle = pathStyle
	}
}

func newSink(cfg *config.Config) export.Sink {
	if cfg.Export.Bucket == "" {
		return export.NewDirSink(cfg.OutputPath())
	}
	client := export.NewS3Client(export.S3Config{
		Region:    cfg.Export.Region,
		Endpoint:  cfg.Export.Endpoint,
		PathStyle: cfg.Export.PathStyle,
	})
	return export.NewS3Sink(client, cfg.Export.Bucket, cfg.Export.Prefix)
}

func pages(app *demo.App) []export.Page {
	routes := app.Routes()
	out := make([]export.Page, 0, len(routes))
	for _, r := range routes {
		out = append(out, export.Page{Path: r.Path, Build: r.Build})
	}
	return out
}
