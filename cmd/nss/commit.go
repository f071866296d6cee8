package main

import (
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the staged index as a new commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			h, err := r.Commit(message)
			if err != nil {
				return err
			}
			log.Infof("committed %s", h)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	return cmd
}

func newLogCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history from HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			commits, err := r.Log(limit)
			if err != nil {
				return err
			}
			for _, c := range commits {
				log.Infof("commit %s", c.Hash())
				log.Infof("Author: %s", c.Author)
				log.Infof("Date:   %s\n", c.Date)
				log.Infof("    %s\n", c.Message)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of commits to show (0 = all)")
	return cmd
}
