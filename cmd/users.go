package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// follow follows (or unfollows) the artists or users given as arguments.
func (r *Runner) follow(on bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ids, err := idArgs(cmd, 0, "ids")
		if err != nil {
			return err
		}

		c, err := r.api()
		if err != nil {
			return err
		}

		switch users := cmd.Bool("users"); {
		case users && on:
			return emit(r, cmd, c.Users.FollowUsers(ctx, ids))
		case users:
			return emit(r, cmd, c.Users.UnfollowUsers(ctx, ids))
		case on:
			return emit(r, cmd, c.Users.FollowArtists(ctx, ids))
		default:
			return emit(r, cmd, c.Users.UnfollowArtists(ctx, ids))
		}
	}
}

// Follows reports, per id, whether the current user follows it.
func (r *Runner) Follows(ctx context.Context, cmd *cli.Command) error {
	ids, err := idArgs(cmd, 0, "ids")
	if err != nil {
		return err
	}

	c, err := r.api()
	if err != nil {
		return err
	}

	if cmd.Bool("users") {
		return emit(r, cmd, c.Users.FollowsUsers(ctx, ids))
	}
	return emit(r, cmd, c.Users.FollowsArtists(ctx, ids))
}
