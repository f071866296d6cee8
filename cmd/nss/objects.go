package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newHashObjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-object <file>",
		Short: "Compute and store a blob object for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			h, err := r.Store.WriteBlob(content)
			if err != nil {
				return err
			}
			fmt.Println(h.String())
			return nil
		},
	}
}

func newCatFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file <hash>",
		Short: "Print an object's kind and full hash, looked up by hash or abbreviated prefix (contents are not printed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := currentRepo()
			if err != nil {
				return err
			}
			obj, err := r.ReadObject(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", obj.Kind(), obj.Hash())
			return nil
		},
	}
}
