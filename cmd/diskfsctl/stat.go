package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Print portable metadata for a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newDiskProvider()
			if err != nil {
				return err
			}
			defer p.Dispose()

			s, err := p.Stat(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("type:  %s\n", s.Type)
			fmt.Printf("size:  %d\n", s.Size)
			fmt.Printf("ctime: %s\n", time.UnixMilli(int64(s.Ctime)).Format(time.RFC3339))
			fmt.Printf("mtime: %s\n", time.UnixMilli(int64(s.Mtime)).Format(time.RFC3339))
			return nil
		},
	}
}
