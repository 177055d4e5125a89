package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/slinet/ehparse/pkg/parser"
)

var categoryMask string

var categoryCmd = &cobra.Command{
	Use:   "category [label|flag]",
	Short: "Look up categories by label or flag",
	Long: `Without an argument, lists the category table. With --mask, lists the
categories an f_cats exclusion mask leaves visible.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch {
		case categoryMask != "":
			n, err := strconv.ParseUint(categoryMask, 0, 32)
			if err != nil {
				return err
			}
			return emit(out, parser.CategoriesFromBits(uint32(n)))
		case len(args) == 0:
			return emit(out, parser.Categories())
		}
		if n, err := strconv.ParseUint(args[0], 0, 32); err == nil {
			return emit(out, parser.CategoryFromFlag(uint32(n)))
		}
		return emit(out, parser.ParseCategory(args[0]))
	},
}

func init() {
	categoryCmd.Flags().StringVar(&categoryMask, "mask", "", "f_cats exclusion mask")
}
