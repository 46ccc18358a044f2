package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marmos91/diskprovider/pkg/diskprovider"
)

func newWatchCommand() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Print filesystem change events as they happen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newDiskProvider()
			if err != nil {
				return err
			}
			defer p.Dispose()

			unsubscribeChanges := p.OnDidChangeFile(func(changes []diskprovider.FileChange) {
				for _, c := range changes {
					fmt.Printf("%-8s %s\n", changeTypeLabel(c.Type), c.Path)
				}
			})
			defer unsubscribeChanges()

			unsubscribeErrors := p.OnDidErrorOccur(func(msg string) {
				fmt.Fprintln(os.Stderr, "watch error:", msg)
			})
			defer unsubscribeErrors()

			var dispose func()
			if recursive {
				dispose = p.WatchRecursive(args[0], nil)
			} else {
				dispose = p.WatchNonRecursive(args[0])
			}
			defer dispose()

			sigc := make(chan os.Signal, 1)
			signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
			<-sigc
			return nil
		},
	}

	cmd.Flags().BoolVar(&recursive, "recursive", true, "watch the directory tree recursively")
	return cmd
}

func changeTypeLabel(t diskprovider.FileChangeType) string {
	switch t {
	case diskprovider.FileChangeAdded:
		return "added"
	case diskprovider.FileChangeDeleted:
		return "deleted"
	default:
		return "updated"
	}
}
