package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReaddirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "readdir <path>",
		Short: "List a directory's entries with their portable type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newDiskProvider()
			if err != nil {
				return err
			}
			defer p.Dispose()

			entries, err := p.Readdir(args[0])
			if err != nil {
				return err
			}

			for _, e := range entries {
				fmt.Printf("%-30s %s\n", e.Name, e.Type)
			}
			return nil
		},
	}
}
