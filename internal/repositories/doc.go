// Package repositories implements SQLite persistence for client-side state.
//
// The only persisted entity is the session: a small set of key-value pairs
// (token, user id, cached profile fields) that must survive process
// restarts, mirroring the durable origin-scoped storage of the web client.
//
// [SessionRepository] provides the key-value operations; the session.Store
// service layers lifecycle semantics (login/logout) on top of it.
package repositories
