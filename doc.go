// Package gitfolio treats a GitHub repository as the content database for a
// portfolio site: one JSON document holds the project collection, binary
// image assets live next to it, and every write goes through the contents
// API with the file's SHA as an optimistic-concurrency token.
//
// Reads are served from a short-lived cache (5 minutes by default) that is
// invalidated synchronously on every write, so a client never sees its own
// writes stale. Conflicting writes from a second client are rejected by
// GitHub with a conflict status; the store never retries or merges — check
// with IsConflict, re-read, and resubmit.
//
// Basic usage:
//
//	store := gitfolio.New("stalker-doge", "NewPortfolio")
//
//	// Public read surface
//	projects, _ := store.Projects(ctx)
//
//	// Authoring surface
//	created, err := store.Create(ctx, gitfolio.Project{
//		Title:       "Neon Racing Pro",
//		Description: "Arcade racer",
//		Category:    []string{"game"},
//	})
//
//	// Partial update: set fields replace, nil fields survive
//	subtitle := "Now with splitscreen"
//	store.Update(ctx, created.ID, gitfolio.Patch{Subtitle: &subtitle})
//
//	// Image handling
//	store.UploadAsset(ctx, created.ID, "hero.jpg", jpegBytes)
//
//	// Snapshot everything to a .tar.zst
//	store.Export(ctx, out)
//
// Credentials resolve from WithToken, then GITFOLIO_TOKEN / GITHUB_TOKEN,
// then whatever TokenSource the caller wires in (the CLI layers its
// persisted login on top).
package gitfolio
