// Command nss is the CLI front-end for the nss object store and index —
// a non-core collaborator (spec §1) that does nothing but parse flags,
// call internal/repo, and translate errors to exit codes (spec §6).
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nopeNoshishi/nss/internal/nsserr"
	"github.com/nopeNoshishi/nss/internal/nsslog"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nss",
		Short:         "nss is a content-addressed version-control storage engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(
		newInitCmd(),
		newHashObjectCmd(),
		newCatFileCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newCommitCmd(),
		newStatusCmd(),
		newLogCmd(),
		newCheckoutCmd(),
		newBookmarkCmd(),
		newMergeBaseCmd(),
		newConfigCmd(),
	)
	return cmd
}

// exitCodeFor maps the §7 error taxonomy to the §6 recommended exit codes.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case nsserr.Is(err, nsserr.ErrNotFoundRepository):
		return 2
	case nsserr.Is(err, nsserr.ErrNotFoundObject), nsserr.IsAmbiguousHash(err):
		return 3
	case nsserr.Is(err, nsserr.ErrDetachedHead):
		return 4
	default:
		return 1
	}
}

var log = nsslog.Default
