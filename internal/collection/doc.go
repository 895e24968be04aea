// Package collection coordinates the album catalog: loading it, picking the
// next album, preparing its card and exporting what was shown.
//
// The Manager is the navigation the TUI wraps in a navigate.Gate:
//
//	mgr := collection.NewManager(settings, collection.WithProgress(onProgress))
//	if err := mgr.Initialize(ctx); err != nil {
//	    return err
//	}
//	card, err := mgr.Next(ctx)
//
// # Progress Events
//
// Progress is reported through a callback with different severity levels:
//   - LevelInfo: General information
//   - LevelVerbose: Detailed progress
//   - LevelWarning: Non-fatal issues
//   - LevelError: Errors that stopped an operation
//   - LevelSuccess: Successful completion
package collection
