// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	// Write data to file, creating parent directories
//	err := ioutils.WriteFile(ctx, "/path/to/session.m3u", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Image Processing
//
// The ImageService handles cover art:
//
//	svc := ioutils.NewImageService()
//
//	// Decode and scale for terminal display
//	img, _ := svc.Decode(ctx, imageData)
//	thumb := svc.Thumbnail(img, 24, 24)
//
//	// Resize to fit within 1000x1000 as JPEG
//	resized, _ := svc.ResizeImage(ctx, imageData, 1000, 1000)
package ioutils
