package main

import (
	"github.com/spf13/cobra"

	"github.com/nopeNoshishi/nss/internal/config"
)

func newConfigCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or set the [user] identity used for commits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			if name == "" && email == "" {
				cfg, err := r.ReadConfig()
				if err != nil {
					return err
				}
				log.Infof("%s", cfg.Signature())
				return nil
			}

			cfg, err := r.ReadConfig()
			if err != nil {
				return err
			}
			if name != "" {
				cfg.User.Name = name
			}
			if email != "" {
				cfg.User.Email = email
			}
			return config.Write(r.ConfigPath, cfg)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "set the author/committer name")
	cmd.Flags().StringVar(&email, "email", "", "set the author/committer email")
	return cmd
}
