package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"movitv/internal/shared"
)

// ProfileShow displays the account profile.
//
// Google sessions carry their profile fields locally and never hit the
// catalog's profile endpoints.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	sess := r.sessions.Current()
	if !sess.IsAuthenticated() {
		r.writePlain("⚠ Please login to see your profile\n")
		return r.writePlain("Run: movitv auth login\n")
	}

	if sess.UserName != "" || sess.UserEmail != "" {
		r.writePlain("Name: %s\n", sess.UserName)
		r.writePlain("Email: %s\n", sess.UserEmail)
		if sess.UserPicture != "" {
			r.writePlain("Picture: %s\n", sess.UserPicture)
		}
		return r.writePlain("Account: Google\n")
	}

	profile, err := r.catalog.Profile(ctx, sess)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, true)
	}

	r.writePlain("Name: %s\n", profile.FullName)
	r.writePlain("Email: %s\n", profile.Email)
	if profile.DateOfBirth != "" {
		r.writePlain("Date of birth: %s\n", profile.DateOfBirth)
	}
	return nil
}

// ProfileEdit updates profile fields on the catalog.
func (r *Runner) ProfileEdit(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	dob := cmd.String("dob")

	if name == "" && dob == "" {
		return fmt.Errorf("%w: provide --name or --dob", shared.ErrMissingArgument)
	}

	sess := r.sessions.Current()
	if !sess.IsAuthenticated() {
		r.writePlain("⚠ Please login to edit your profile\n")
		return r.writePlain("Run: movitv auth login\n")
	}

	profile, err := r.catalog.Profile(ctx, sess)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if name != "" {
		profile.FullName = name
	}
	if dob != "" {
		profile.DateOfBirth = dob
	}

	saved, err := r.catalog.SaveProfile(ctx, sess, profile)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("✓ Profile updated\n")
	r.writePlain("Name: %s\n", saved.FullName)
	if saved.DateOfBirth != "" {
		r.writePlain("Date of birth: %s\n", saved.DateOfBirth)
	}
	return nil
}
