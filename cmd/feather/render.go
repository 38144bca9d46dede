package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/feather/internal/errors"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var todos []string

	cmd := &cobra.Command{
		Use:   "render [path]",
		Short: "Print a page to stdout",
		Long: `Render one page of the application and print its HTML.

Examples:
  feather render
  feather render /hello
  feather render / --todo="write docs"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}

			app, err := newApp(cfg, newLogger(cfg, cmd.ErrOrStderr()), nil, todos)
			if err != nil {
				return err
			}
			route, ok := app.Route(path)
			if !ok {
				var known []string
				for _, r := range app.Routes() {
					known = append(known, r.Path)
				}
				return errors.New("E140").
					WithDetailf("no page at %s", path).
					WithSuggestion("Known pages: " + strings.Join(known, ", "))
			}

			page, err := route.Build(cmd.Context())
			if err != nil {
				return errors.New("E080").WithDetailf("page %s", path).Wrap(err)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), page.String())
			return err
		},
	}

	cmd.Flags().StringArrayVar(&todos, "todo", nil, "Seed a todo (repeatable)")
	return cmd
}
