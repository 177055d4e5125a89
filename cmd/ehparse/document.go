package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/slinet/ehparse/internal/spool"
	"github.com/slinet/ehparse/pkg/filter"
	"github.com/slinet/ehparse/pkg/parser"
)

var (
	listQuery string
	listCats  string
)

var documentShort = map[spool.Kind]string{
	spool.KindList:      "Decode a search result or front page",
	spool.KindNav:       "Decode the pagination of a listing page",
	spool.KindDetail:    "Decode a gallery detail page",
	spool.KindTorrents:  "Decode a torrent list popup",
	spool.KindArchive:   "Decode an archive download popup",
	spool.KindPage:      "Decode a single image viewer page",
	spool.KindFavorites: "Decode the favourites page",
	spool.KindSignIn:    "Decode a sign-in result page",
}

// documentCommands builds one subcommand per document kind.
func documentCommands() []*cobra.Command {
	var cmds []*cobra.Command
	for _, kind := range spool.Kinds() {
		cmd := &cobra.Command{
			Use:   string(kind) + " [file]",
			Short: documentShort[kind],
			Args:  cobra.MaximumNArgs(1),
			RunE:  runDocument(kind),
		}
		if kind == spool.KindList {
			cmd.Flags().StringVarP(&listQuery, "query", "q", "", "keep entries matching a search string")
			cmd.Flags().StringVar(&listCats, "cats", "", "category exclusion mask (f_cats)")
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func runDocument(kind spool.Kind) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		body, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		start := time.Now()
		v, err := spool.Decode(p, kind, body)
		if err != nil {
			log.Debug("document rejected", zap.String("kind", string(kind)), zap.Error(err))
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		log.Debug("document parsed",
			zap.String("kind", string(kind)),
			zap.Int("bytes", len(body)),
			zap.Duration("elapsed", time.Since(start)))

		if kind == spool.KindList {
			if v, err = narrowList(v); err != nil {
				return err
			}
		}
		return emit(cmd.OutOrStdout(), v)
	}
}

func narrowList(v any) (any, error) {
	if listQuery == "" && listCats == "" {
		return v, nil
	}
	var mask uint32
	if listCats != "" {
		n, err := strconv.ParseUint(listCats, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid --cats: %w", err)
		}
		mask = uint32(n)
	}
	var q *filter.Query
	if listQuery != "" {
		q = filter.Parse(listQuery)
	}
	list := v.(*parser.GalleryList)
	list.Galleries = filter.Apply(list.Galleries, q, mask)
	return list, nil
}
