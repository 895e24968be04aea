package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/vinyl-shuffle/internal/collection"
	"github.com/handiism/vinyl-shuffle/internal/display"
	"github.com/handiism/vinyl-shuffle/internal/model"
)

type pickedAlbum struct {
	ID      string   `json:"id,omitempty"`
	Artist  string   `json:"artist"`
	Album   string   `json:"album"`
	Year    string   `json:"year,omitempty"`
	Genres  []string `json:"genres,omitempty"`
	Styles  []string `json:"styles,omitempty"`
	Link    string   `json:"link,omitempty"`
	Listen  string   `json:"listen,omitempty"`
	Cover   string   `json:"cover"`
	SavedTo string   `json:"saved_to,omitempty"`
}

func newPickCommand(ctx *commandContext) *cobra.Command {
	var saveCoverDir string
	var jsonOutput bool
	var showCover bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Print one random album",
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

			settings.TransitionDelay = 0
			mgr := collection.NewManager(settings, collection.WithLogger(logger))
			if err := mgr.Initialize(cmd.Context()); err != nil {
				return err
			}

			card, err := mgr.Next(cmd.Context())
			if err != nil {
				return err
			}

			picked := toPickedAlbum(card)
			if saveCoverDir != "" {
				path, err := mgr.SaveCover(cmd.Context(), card, saveCoverDir)
				if err != nil {
					return err
				}
				picked.SavedTo = path
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(picked)
			}

			if showCover && isTerminal(out) && card.CoverLoaded {
				fmt.Fprintln(out, card.Cover)
			}
			fmt.Fprintln(out, formatPicked(picked, isTerminal(out)))
			return nil
		},
	}

	cmd.Flags().StringVar(&saveCoverDir, "save-cover", "", "Save the cover art into this directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the album as JSON")
	cmd.Flags().BoolVar(&showCover, "cover", true, "Draw the cover art when printing to a terminal")
	return cmd
}

func toPickedAlbum(card *display.Card) pickedAlbum {
	p := albumJSON(card.Album)
	p.Listen = card.ListenURL
	return p
}

func albumJSON(a *model.Album) pickedAlbum {
	return pickedAlbum{
		ID:     a.ID,
		Artist: a.Artist,
		Album:  a.Title,
		Year:   a.Year(),
		Genres: a.Genres,
		Styles: a.Styles,
		Link:   a.Link(),
		Listen: a.AppleMusicURL,
		Cover:  a.CoverImage,
	}
}

func formatPicked(p pickedAlbum, links bool) string {
	var b strings.Builder
	title := p.Album
	if links {
		title = display.Hyperlink(p.Album, p.Link)
	}
	fmt.Fprintf(&b, "%s\n%s", title, p.Artist)

	if len(p.Genres) > 0 {
		fmt.Fprintf(&b, "\nGenres: %s", strings.Join(p.Genres, ", "))
	}
	if len(p.Styles) > 0 {
		fmt.Fprintf(&b, "\nStyles: %s", strings.Join(p.Styles, ", "))
	}
	if p.Year != "" {
		fmt.Fprintf(&b, "\nReleased: %s", p.Year)
	}
	if p.Listen != "" {
		fmt.Fprintf(&b, "\nListen: %s", p.Listen)
	}
	if p.SavedTo != "" {
		fmt.Fprintf(&b, "\nCover saved to %s", p.SavedTo)
	}
	return b.String()
}
