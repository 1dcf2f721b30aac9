// Package services defines typed adapters for the two remote HTTP APIs the
// client consumes.
//
// # Catalog Service
//
// [CatalogService] talks to the MoviTV catalog: account endpoints (login,
// register, Google OAuth entry), the per-user bookmark sub-resources, and
// the profile endpoints. The catalog's response shapes are loose (the
// subject id arrives as movieId, tvSeriesId, or tmdbId depending on the
// endpoint, and the bookmark id as _id), so normalization into
// [models.BookmarkRecord] happens here, at the call boundary, never in the
// core.
//
// # TMDB
//
// [TMDBService] is the read-only metadata source: details, credits, videos,
// recommendations, genre lists, and the browse feeds (trending, now
// playing, upcoming, discover, search). Requests authenticate with the v4
// read access token via an oauth2 static token source, falling back to the
// v3 api_key query parameter when only that is configured.
//
// # Error Handling
//
// Non-2xx responses surface as [*APIError] carrying the HTTP status and the
// server-provided error message when the payload includes one. Callers use
// [errors.As] to recover the displayable message and fall back to a generic
// one otherwise.
package services
