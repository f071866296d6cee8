package main

import (
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>",
		Short: "Stage a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			if err := r.Add(args[0]); err != nil {
				return err
			}
			log.Infof("staged %s", args[0])
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Unstage a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			if err := r.Remove(args[0]); err != nil {
				return err
			}
			log.Infof("unstaged %s", args[0])
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show staged changes relative to HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			changes, err := r.Status()
			if err != nil {
				return err
			}
			for _, c := range changes {
				log.Infof("%-8s %s", c.Tag, c.Filename)
			}
			return nil
		},
	}
}
