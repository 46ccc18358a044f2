package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/diskprovider/pkg/diskprovider"
)

func newWriteCommand() *cobra.Command {
	var (
		create    bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Write stdin to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newDiskProvider()
			if err != nil {
				return err
			}
			defer p.Dispose()

			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}

			return p.WriteFile(args[0], data, diskprovider.WriteFileOptions{
				Create:    create,
				Overwrite: overwrite,
			})
		},
	}

	cmd.Flags().BoolVar(&create, "create", true, "create the file if it doesn't exist")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite the file if it already exists")
	return cmd
}
