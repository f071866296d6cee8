package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nopeNoshishi/nss/internal/repo"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize an empty nss repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			if _, err := repo.Init(cwd); err != nil {
				return err
			}
			log.Infof("Initialized empty nss repository in %s/%s/", cwd, repo.DirName)
			return nil
		},
	}
}

// currentRepo discovers the repository containing the working directory.
func currentRepo() (*repo.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return repo.Discover(cwd)
}
