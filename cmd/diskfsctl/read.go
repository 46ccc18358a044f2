package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newReadCommand() *cobra.Command {
	var stream bool

	cmd := &cobra.Command{
		Use:   "read <path>",
		Short: "Print a file's contents to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newDiskProvider()
			if err != nil {
				return err
			}
			defer p.Dispose()

			if stream {
				cancel := make(chan struct{})
				r, err := p.ReadFileStream(args[0], cancel)
				if err != nil {
					return err
				}
				defer r.Close()
				_, err = io.Copy(os.Stdout, r)
				return err
			}

			data, err := p.ReadFile(args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "read via the streaming API instead of loading the whole file")
	return cmd
}
