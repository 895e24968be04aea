// Package display turns catalog albums into terminal-ready cards.
//
// A Card holds the album together with its cover art pre-rendered as
// half-block characters ("▀"), two image rows per terminal line. The
// Renderer downloads and scales the cover before the card is shown, so the
// album appears with its art in one step.
//
// # Basic Usage
//
//	r := display.NewRenderer(client, display.WithCoverWidth(24))
//	card, err := r.Prepare(ctx, album)
//	fmt.Println(card.Cover)
//
// Links are emitted as OSC 8 hyperlinks; terminals without support show the
// plain text.
package display
