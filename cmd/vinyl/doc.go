// Command vinyl shows a random album from a record collection.
//
// Without a subcommand it opens the interactive browser: click "Another",
// press an arrow key or r, or drag the card sideways to shuffle. The pick
// and list subcommands print albums for scripts.
package main
