package client

import (
	"context"
	"strconv"

	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
)

// PlayerService controls playback on the current user's devices.
//
// Most commands answer with 204 No Content, so their success value is nil.
type PlayerService struct {
	d request.Doer
}

func (s *PlayerService) PlaybackState(ctx context.Context) request.Result[models.Player] {
	return request.Do[models.Player](ctx, s.d, request.GET, "/me/player", nil)
}

// TransferPlayback moves playback to the given devices.
func (s *PlayerService) TransferPlayback(ctx context.Context, deviceIDs []string) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, "/me/player", models.TransferPlaybackBody{DeviceIDs: deviceIDs})
}

func (s *PlayerService) Devices(ctx context.Context) request.Result[models.Devices] {
	return request.Do[models.Devices](ctx, s.d, request.GET, "/me/player/devices", nil)
}

func (s *PlayerService) CurrentlyPlaying(ctx context.Context) request.Result[models.Player] {
	return request.Do[models.Player](ctx, s.d, request.GET, "/me/player/currently-playing", nil)
}

func (s *PlayerService) Play(ctx context.Context, deviceID string) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, "/me/player/play?device_id="+deviceID, nil)
}

func (s *PlayerService) Pause(ctx context.Context, deviceID string) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, "/me/player/pause?device_id="+deviceID, nil)
}

func (s *PlayerService) Next(ctx context.Context, deviceID string) request.Result[any] {
	return s.d.Dispatch(ctx, request.POST, "/me/player/next?device_id="+deviceID, nil)
}

func (s *PlayerService) Previous(ctx context.Context, deviceID string) request.Result[any] {
	return s.d.Dispatch(ctx, request.POST, "/me/player/previous?device_id="+deviceID, nil)
}

// Seek jumps to positionMs in the current track.
func (s *PlayerService) Seek(ctx context.Context, positionMs int) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, "/me/player/seek?position_ms="+itoa(positionMs), nil)
}

func (s *PlayerService) RepeatTrack(ctx context.Context) request.Result[any] {
	return s.repeat(ctx, "track")
}

func (s *PlayerService) RepeatContext(ctx context.Context) request.Result[any] {
	return s.repeat(ctx, "context")
}

func (s *PlayerService) RepeatOff(ctx context.Context) request.Result[any] {
	return s.repeat(ctx, "off")
}

func (s *PlayerService) repeat(ctx context.Context, state string) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, "/me/player/repeat?state="+state, nil)
}

// SetVolume sets the volume of the active device, 0 to 100.
func (s *PlayerService) SetVolume(ctx context.Context, percent int) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, "/me/player/volume?volume_percent="+itoa(percent), nil)
}

func (s *PlayerService) SetShuffle(ctx context.Context, on bool) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, "/me/player/shuffle?state="+strconv.FormatBool(on), nil)
}

func (s *PlayerService) RecentlyPlayed(ctx context.Context) request.Result[models.RecentlyPlayed] {
	return request.Do[models.RecentlyPlayed](ctx, s.d, request.GET, "/me/player/recently-played", nil)
}

func (s *PlayerService) Queue(ctx context.Context) request.Result[models.Queue] {
	return request.Do[models.Queue](ctx, s.d, request.GET, "/me/player/queue", nil)
}

// AddToQueue appends an item to the end of the playback queue.
func (s *PlayerService) AddToQueue(ctx context.Context, uri string) request.Result[any] {
	return s.d.Dispatch(ctx, request.POST, "/me/player/queue?uri="+uri, nil)
}
