package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/handiism/vinyl-shuffle/internal/catalog"
	"github.com/handiism/vinyl-shuffle/internal/http"
	"github.com/handiism/vinyl-shuffle/internal/model"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var limit int
	var filter string
	var lang string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the albums of the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			logger, logs, err := ctx.logger()
			if err != nil {
				return err
			}
			defer logs.Close()

			client := http.NewClient(
				http.WithUserAgent(settings.UserAgent),
				http.WithTimeout(settings.HTTPTimeout),
			)
			src := catalog.NewSource(client, settings.CatalogURLs,
				catalog.WithConcurrency(settings.MaxConcurrentFetches),
				catalog.WithLogger(logger),
			)
			albums, err := src.Fetch(cmd.Context())
			if err != nil {
				return err
			}

			tag, err := language.Parse(lang)
			if err != nil {
				return fmt.Errorf("invalid --lang %q: %w", lang, err)
			}
			albums = filterAlbums(albums, filter)
			sortAlbums(albums, tag)
			if limit > 0 && len(albums) > limit {
				albums = albums[:limit]
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				items := make([]pickedAlbum, 0, len(albums))
				for _, a := range albums {
					items = append(items, albumJSON(a))
				}
				return enc.Encode(items)
			}

			rows := make([][]string, 0, len(albums))
			for _, a := range albums {
				rows = append(rows, []string{a.Artist, a.Title, a.Year(), strings.Join(a.Genres, ", ")})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Artist", "Album", "Year", "Genres"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				isTerminal(out),
			))
			fmt.Fprintf(out, "%d album(s)\n", len(albums))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print albums as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n albums")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only albums whose artist or title contains this text")
	cmd.Flags().StringVar(&lang, "lang", "en", "Language used to sort names")
	return cmd
}

// sortAlbums orders albums by artist then title using locale-aware
// collation, so "Ólafur Arnalds" sorts next to "Olafur".
func sortAlbums(albums []*model.Album, tag language.Tag) {
	c := collate.New(tag, collate.IgnoreCase, collate.IgnoreDiacritics)
	slices.SortStableFunc(albums, func(a, b *model.Album) int {
		if n := c.CompareString(a.Artist, b.Artist); n != 0 {
			return n
		}
		return c.CompareString(a.Title, b.Title)
	})
}

func filterAlbums(albums []*model.Album, filter string) []*model.Album {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return albums
	}
	var out []*model.Album
	for _, a := range albums {
		if strings.Contains(strings.ToLower(a.Artist), filter) || strings.Contains(strings.ToLower(a.Title), filter) {
			out = append(out, a)
		}
	}
	return out
}
