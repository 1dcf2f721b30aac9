package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"movitv/internal/models"
	"movitv/internal/services"
	"movitv/internal/shared"
)

// printPage renders one page of a TMDB feed.
func (r *Runner) printPage(page *services.TMDBPage) {
	if len(page.Results) == 0 {
		r.writePlain("No results\n")
		return
	}

	for i, title := range page.Results {
		record := title.Record()
		line := fmt.Sprintf("%d. %s", i+1, record.Title)
		if year := record.Year(); year != "" {
			line = fmt.Sprintf("%s (%s)", line, year)
		}
		r.writePlain("%s\n", line)
		r.writePlain("   TMDB ID: %s", record.SubjectID)
		if record.VoteAverage > 0 {
			r.writePlain("  •  ★ %.1f", record.VoteAverage)
		}
		r.writePlain("\n")
	}

	r.writePlain("\nPage %d of %d (%d results)\n", page.Page, page.TotalPages, page.TotalResults)
}

// browseFeed runs one paged feed fetch and renders it.
func (r *Runner) browseFeed(cmd *cli.Command, fetch func() (*services.TMDBPage, error)) error {
	page, err := fetch()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.printPage(page)
	return nil
}

// BrowseTrending shows the daily trending movie feed.
func (r *Runner) BrowseTrending(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("fetching trending movies")
	return r.browseFeed(cmd, func() (*services.TMDBPage, error) {
		return r.tmdb.Trending(ctx)
	})
}

// BrowseNowPlaying shows movies currently in theaters.
func (r *Runner) BrowseNowPlaying(ctx context.Context, cmd *cli.Command) error {
	page := cmd.Int("page")
	r.logger.Info("fetching now playing", "page", page)
	return r.browseFeed(cmd, func() (*services.TMDBPage, error) {
		return r.tmdb.NowPlaying(ctx, page)
	})
}

// BrowseUpcoming shows upcoming movie releases.
func (r *Runner) BrowseUpcoming(ctx context.Context, cmd *cli.Command) error {
	page := cmd.Int("page")
	r.logger.Info("fetching upcoming", "page", page)
	return r.browseFeed(cmd, func() (*services.TMDBPage, error) {
		return r.tmdb.Upcoming(ctx, page)
	})
}

// BrowseDiscover browses movies filtered by genre.
func (r *Runner) BrowseDiscover(ctx context.Context, cmd *cli.Command) error {
	page := cmd.Int("page")
	genres := cmd.IntSlice("genre")
	r.logger.Info("discovering movies", "page", page, "genres", genres)
	return r.browseFeed(cmd, func() (*services.TMDBPage, error) {
		return r.tmdb.Discover(ctx, page, genres)
	})
}

// BrowseSearch searches movies by title.
func (r *Runner) BrowseSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	page := cmd.Int("page")
	r.logger.Info("searching movies", "query", query, "page", page)
	return r.browseFeed(cmd, func() (*services.TMDBPage, error) {
		return r.tmdb.SearchMovies(ctx, query, page)
	})
}

// BrowseDetail shows full details for a title, with cast and trailer.
//
// A missing title is a hard error here, unlike bookmark enrichment where a
// failed lookup is tolerated per item.
func (r *Runner) BrowseDetail(ctx context.Context, cmd *cli.Command) error {
	subjectID := cmd.StringArg("id")
	if subjectID == "" {
		return fmt.Errorf("%w: title id is required", shared.ErrMissingArgument)
	}

	mediaType, ok := models.ParseMediaType(cmd.String("type"))
	if !ok {
		return fmt.Errorf("%w: unknown media type %q", shared.ErrInvalidArgument, cmd.String("type"))
	}

	r.logger.Info("fetching details", "subject", subjectID, "type", mediaType)

	record, err := r.tmdb.Details(ctx, subjectID, mediaType)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(record, true)
	}

	r.writePlain("%s\n", record.Title)
	if year := record.Year(); year != "" {
		r.writePlain("Year: %s\n", year)
	}
	if record.VoteAverage > 0 {
		r.writePlain("Rating: %.1f\n", record.VoteAverage)
	}
	if record.PosterPath != "" {
		r.writePlain("Poster: %s\n", services.ImageURL(record.PosterPath))
	}
	if record.Overview != "" {
		r.writePlain("\n%s\n", record.Overview)
	}

	// Cast and trailer are best-effort extras; the detail still renders
	// when either lookup fails.
	if cast, err := r.tmdb.Credits(ctx, subjectID, mediaType); err == nil && len(cast) > 0 {
		if len(cast) > 8 {
			cast = cast[:8]
		}
		r.writePlain("\nCast:\n")
		for _, member := range cast {
			if member.Character != "" {
				r.writePlain("  %s as %s\n", member.Name, member.Character)
			} else {
				r.writePlain("  %s\n", member.Name)
			}
		}
	} else if err != nil {
		r.logger.Warn("credits lookup failed", "error", err)
	}

	if videos, err := r.tmdb.Videos(ctx, subjectID, mediaType); err == nil {
		if trailer := services.TrailerURL(videos); trailer != "" {
			r.writePlain("\nTrailer: %s\n", trailer)
		}
	} else {
		r.logger.Warn("videos lookup failed", "error", err)
	}

	if recs, err := r.tmdb.Recommendations(ctx, subjectID, mediaType); err == nil && len(recs.Results) > 0 {
		limit := len(recs.Results)
		if limit > 5 {
			limit = 5
		}
		r.writePlain("\nYou may also like:\n")
		for _, title := range recs.Results[:limit] {
			rec := title.Record()
			if year := rec.Year(); year != "" {
				r.writePlain("  %s (%s)\n", rec.Title, year)
			} else {
				r.writePlain("  %s\n", rec.Title)
			}
		}
	} else if err != nil {
		r.logger.Warn("recommendations lookup failed", "error", err)
	}

	return nil
}

// BrowseGenres lists the genres for a media type.
func (r *Runner) BrowseGenres(ctx context.Context, cmd *cli.Command) error {
	mediaType, ok := models.ParseMediaType(cmd.String("type"))
	if !ok {
		return fmt.Errorf("%w: unknown media type %q", shared.ErrInvalidArgument, cmd.String("type"))
	}

	genres, err := r.tmdb.Genres(ctx, mediaType)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, true)
	}

	r.writePlain("%s genres:\n\n", mediaType.Label())
	for _, genre := range genres {
		r.writePlain("%5d  %s\n", genre.ID, genre.Name)
	}
	return nil
}
