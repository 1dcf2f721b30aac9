package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"movitv/internal/formatter"
	"movitv/internal/models"
	"movitv/internal/shared"
)

// refreshCollection rebuilds the engine's collection for the stored session.
// Returns the login-required outcome as a printed prompt, not an error.
func (r *Runner) refreshCollection(ctx context.Context) (bool, error) {
	sess := r.sessions.Current()

	if err := r.engine.Refresh(ctx, sess, nil); err != nil {
		if msg := r.engine.Failure(); msg != "" {
			return false, fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
		}
		return false, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if r.engine.LoginRequired() {
		r.writePlain("⚠ Please login to see your bookmarks\n")
		r.writePlain("Run: movitv auth login\n")
		return false, nil
	}

	return true, nil
}

// printBookmarks renders the enriched collection as a numbered list.
func (r *Runner) printBookmarks(bookmarks []models.EnrichedBookmark) {
	if len(bookmarks) == 0 {
		r.writePlain("No bookmarks found\n")
		return
	}

	r.writePlain("Found %d bookmarks:\n\n", len(bookmarks))
	for i, b := range bookmarks {
		title := b.DisplayTitle()
		if title == "" {
			title = fmt.Sprintf("(unresolved %s)", b.SubjectID)
		}
		r.writePlain("%d. %s\n", i+1, title)
		r.writePlain("   Type: %s\n", b.MediaType.Label())
		r.writePlain("   Bookmark ID: %s\n", b.BookmarkID)
		if b.Metadata != nil {
			if year := b.Metadata.Year(); year != "" {
				r.writePlain("   Year: %s\n", year)
			}
			if b.Metadata.VoteAverage > 0 {
				r.writePlain("   Rating: %.1f\n", b.Metadata.VoteAverage)
			}
			if b.Metadata.Overview != "" {
				r.writePlain("   %s\n", shared.TruncateWords(b.Metadata.Overview, 25))
			}
		}
		r.writePlain("\n")
	}
}

// BookmarkList fetches and displays the full enriched collection.
func (r *Runner) BookmarkList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("refreshing bookmark collection")

	ok, err := r.refreshCollection(ctx)
	if err != nil || !ok {
		return err
	}

	bookmarks := r.engine.Bookmarks()

	if useJSON {
		return r.writeJSON(bookmarks, pretty)
	}

	r.printBookmarks(bookmarks)
	return nil
}

// BookmarkAdd bookmarks a title by TMDB id. The collection is not refreshed;
// the new bookmark shows up on the next list.
func (r *Runner) BookmarkAdd(ctx context.Context, cmd *cli.Command) error {
	subjectID := cmd.StringArg("id")
	if subjectID == "" {
		return fmt.Errorf("%w: title id is required", shared.ErrMissingArgument)
	}

	mediaType, ok := models.ParseMediaType(cmd.String("type"))
	if !ok {
		return fmt.Errorf("%w: unknown media type %q", shared.ErrInvalidArgument, cmd.String("type"))
	}

	r.logger.Info("adding bookmark", "subject", subjectID, "type", mediaType)

	outcome := r.engine.Add(ctx, r.sessions.Current(), subjectID, mediaType)
	return r.writeOutcome(outcome)
}

// BookmarkRemove removes a bookmark by its server-assigned id.
func (r *Runner) BookmarkRemove(ctx context.Context, cmd *cli.Command) error {
	bookmarkID := cmd.StringArg("id")
	if bookmarkID == "" {
		return fmt.Errorf("%w: bookmark id is required", shared.ErrMissingArgument)
	}

	mediaType, ok := models.ParseMediaType(cmd.String("type"))
	if !ok {
		return fmt.Errorf("%w: unknown media type %q", shared.ErrInvalidArgument, cmd.String("type"))
	}

	r.logger.Info("removing bookmark", "bookmark", bookmarkID, "type", mediaType)

	outcome := r.engine.Remove(ctx, r.sessions.Current(), bookmarkID, mediaType)
	return r.writeOutcome(outcome)
}

// BookmarkSearch filters the collection by title. An empty query lists
// everything, matching the list command.
func (r *Runner) BookmarkSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	useJSON := cmd.Bool("json")

	ok, err := r.refreshCollection(ctx)
	if err != nil || !ok {
		return err
	}

	matched := r.engine.Search(query)

	if useJSON {
		return r.writeJSON(matched, true)
	}

	if len(matched) == 0 && strings.TrimSpace(query) != "" {
		return r.writePlain("No bookmarks match %q\n", query)
	}

	r.printBookmarks(matched)
	return nil
}

// BookmarkExport writes the collection to a file in the chosen format.
func (r *Runner) BookmarkExport(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	output := cmd.String("output")
	withPosters := cmd.Bool("posters")

	ok, err := r.refreshCollection(ctx)
	if err != nil || !ok {
		return err
	}

	bookmarks := r.engine.Bookmarks()
	if len(bookmarks) == 0 {
		return r.writePlain("No bookmarks to export\n")
	}

	switch format {
	case "csv":
		file, err := formatter.WriteCSVExport(bookmarks, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d bookmarks to %s\n", len(bookmarks), file)

	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(bookmarks, output, "Bookmarks", withPosters)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d bookmarks to %s/README.md\n", len(bookmarks), result.Directory)
		if len(result.Posters) > 0 {
			r.writePlain("  Posters: %d downloaded\n", len(result.Posters))
		}

	case "text", "txt":
		file, err := formatter.WriteTextExport(bookmarks, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d bookmarks to %s\n", len(bookmarks), file)

	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	return nil
}
