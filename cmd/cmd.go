// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// typeFlag selects between movie and TV series sub-resources.
func typeFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "type",
		Aliases: []string{"t"},
		Usage:   "Media type (movie or tv)",
		Value:   value,
	}
}

// setupCommand handles setup operations for the config file and session database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file, database, and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Login with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and login",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "google",
				Usage:  "Sign in with Google via the browser",
				Action: r.AuthGoogle,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the stored session state",
				Action: r.AuthStatus,
			},
		},
	}
}

// bookmarkCommand handles bookmark collection operations
func bookmarkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "bookmark",
		Aliases: []string{"bm"},
		Usage:   "Manage your bookmark collection",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Fetch and display all bookmarks with metadata",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.BookmarkList,
			},
			{
				Name:  "add",
				Usage: "Bookmark a title by its TMDB id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{typeFlag("movie")},
				Action: r.BookmarkAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a bookmark by its bookmark id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{typeFlag("movie")},
				Action: r.BookmarkRemove,
			},
			{
				Name:  "search",
				Usage: "Filter the bookmark collection by title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.BookmarkSearch,
			},
			{
				Name:  "export",
				Usage: "Export the bookmark collection to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, or text)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (file base or directory)",
					},
					&cli.BoolFlag{
						Name:  "posters",
						Usage: "Download poster images (markdown only)",
					},
				},
				Action: r.BookmarkExport,
			},
		},
	}
}

// browseCommand handles TMDB discovery feeds
func browseCommand(r *Runner) *cli.Command {
	pageFlag := &cli.IntFlag{
		Name:    "page",
		Aliases: []string{"p"},
		Usage:   "Result page (1-500)",
		Value:   1,
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}

	return &cli.Command{
		Name:  "browse",
		Usage: "Browse movies and TV series on TMDB",
		Commands: []*cli.Command{
			{
				Name:   "trending",
				Usage:  "Daily trending movies",
				Flags:  []cli.Flag{jsonFlag},
				Action: r.BrowseTrending,
			},
			{
				Name:   "nowplaying",
				Usage:  "Movies currently in theaters",
				Flags:  []cli.Flag{pageFlag, jsonFlag},
				Action: r.BrowseNowPlaying,
			},
			{
				Name:   "upcoming",
				Usage:  "Upcoming movie releases",
				Flags:  []cli.Flag{pageFlag, jsonFlag},
				Action: r.BrowseUpcoming,
			},
			{
				Name:  "discover",
				Usage: "Discover movies, optionally filtered by genre",
				Flags: []cli.Flag{
					pageFlag,
					jsonFlag,
					&cli.IntSliceFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Genre id filter (repeatable)",
					},
				},
				Action: r.BrowseDiscover,
			},
			{
				Name:  "search",
				Usage: "Search movies by title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  []cli.Flag{pageFlag, jsonFlag},
				Action: r.BrowseSearch,
			},
			{
				Name:  "detail",
				Usage: "Full details for one title, with cast and trailer",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{typeFlag("movie"), jsonFlag},
				Action: r.BrowseDetail,
			},
			{
				Name:   "genres",
				Usage:  "List genres for a media type",
				Flags:  []cli.Flag{typeFlag("movie"), jsonFlag},
				Action: r.BrowseGenres,
			},
		},
	}
}

// profileCommand handles account profile operations
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View and edit the account profile",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Display the account profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "edit",
				Usage: "Update profile fields",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Full name",
					},
					&cli.StringFlag{
						Name:  "dob",
						Usage: "Date of birth (YYYY-MM-DD)",
					},
				},
				Action: r.ProfileEdit,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive bookmark management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing bookmarks",
		Action:  r.TUI,
	}
}
