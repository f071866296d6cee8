package main

import (
	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <bookmark-or-hash>",
		Short: "Switch the working directory and HEAD to a bookmark or commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			if err := r.Checkout(args[0]); err != nil {
				return err
			}
			log.Infof("checked out %s", args[0])
			return nil
		},
	}
}

func newMergeBaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge-base <ref-a> <ref-b>",
		Short: "Print the best common ancestor of two commits",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			h, found, err := r.MergeBase(args[0], args[1])
			if err != nil {
				return err
			}
			if !found {
				log.Infof("no common ancestor")
				return nil
			}
			log.Infof("%s", h)
			return nil
		},
	}
}
