package main

import (
	"github.com/spf13/cobra"
)

func newBookmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Manage named bookmarks (branches)",
	}
	cmd.AddCommand(newBookmarkCreateCmd(), newBookmarkListCmd(), newBookmarkDeleteCmd())
	return cmd
}

func newBookmarkCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a bookmark at HEAD's commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			return r.CreateBookmark(args[0])
		},
	}
}

func newBookmarkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			names, err := r.ListBookmarks()
			if err != nil {
				return err
			}
			for _, n := range names {
				log.Infof("%s", n)
			}
			return nil
		},
	}
}

func newBookmarkDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			return r.DeleteBookmark(args[0])
		},
	}
}
