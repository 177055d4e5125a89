package main

import (
	"github.com/spf13/cobra"
)

var urlStrict bool

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Decode gallery and page links",
}

var urlDetailCmd = &cobra.Command{
	Use:   "detail <url>",
	Short: "Extract gid and token from a gallery link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := p.ParseDetailURL(args[0], urlStrict)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), id)
	},
}

var urlPageCmd = &cobra.Command{
	Use:   "page <url>",
	Short: "Extract gid, page token and page index from a viewer link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := p.ParsePageURL(args[0], urlStrict)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), id)
	},
}

func init() {
	urlCmd.PersistentFlags().BoolVar(&urlStrict, "strict", false, "require a full link on a configured host")
	urlCmd.AddCommand(urlDetailCmd, urlPageCmd)
}
