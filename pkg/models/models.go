// package models defines the typed response shapes of the Web API
//
// JSON tags use camelCase: responses are decoded after their snake_case keys have been normalized.
package models

// ResultSet is a page of items.
type ResultSet[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Next     *string `json:"next"`
	Offset   int     `json:"offset"`
	Previous *string `json:"previous"`
	Total    int     `json:"total"`
}

// ExternalURLs holds links to the resource outside the API.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// ExternalIDs holds industry identifiers for a track or album.
type ExternalIDs struct {
	ISRC string `json:"isrc,omitempty"`
	EAN  string `json:"ean,omitempty"`
	UPC  string `json:"upc,omitempty"`
}

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

// Followers is always returned with a null href.
type Followers struct {
	Href  *string `json:"href"`
	Total int     `json:"total"`
}

// Restrictions explains why content is unavailable ("market", "product", "explicit").
type Restrictions struct {
	Reason string `json:"reason"`
}

// Artist represents an artist (full or simplified).
type Artist struct {
	ExternalURLs ExternalURLs `json:"externalUrls"`
	Followers    *Followers   `json:"followers,omitempty"`
	Genres       []string     `json:"genres,omitempty"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Images       []Image      `json:"images,omitempty"`
	Name         string       `json:"name"`
	Popularity   int          `json:"popularity,omitempty"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

// Album represents an album. Tracks is only set on full album objects.
type Album struct {
	AlbumType            string            `json:"albumType"`
	AlbumGroup           string            `json:"albumGroup,omitempty"`
	TotalTracks          int               `json:"totalTracks"`
	AvailableMarkets     []string          `json:"availableMarkets,omitempty"`
	ExternalURLs         ExternalURLs      `json:"externalUrls"`
	ExternalIDs          *ExternalIDs      `json:"externalIds,omitempty"`
	Href                 string            `json:"href"`
	ID                   string            `json:"id"`
	Images               []Image           `json:"images"`
	Name                 string            `json:"name"`
	ReleaseDate          string            `json:"releaseDate"`
	ReleaseDatePrecision string            `json:"releaseDatePrecision"`
	Restrictions         *Restrictions     `json:"restrictions,omitempty"`
	Type                 string            `json:"type"`
	URI                  string            `json:"uri"`
	Artists              []Artist          `json:"artists"`
	Tracks               *ResultSet[Track] `json:"tracks,omitempty"`
	Label                string            `json:"label,omitempty"`
	Popularity           int               `json:"popularity,omitempty"`
}

// Track represents a track (full or simplified).
type Track struct {
	Album            *Album        `json:"album,omitempty"`
	Artists          []Artist      `json:"artists"`
	AvailableMarkets []string      `json:"availableMarkets,omitempty"`
	DiscNumber       int           `json:"discNumber"`
	DurationMS       int           `json:"durationMs"`
	Explicit         bool          `json:"explicit"`
	ExternalIDs      *ExternalIDs  `json:"externalIds,omitempty"`
	ExternalURLs     ExternalURLs  `json:"externalUrls"`
	Href             string        `json:"href"`
	ID               string        `json:"id"`
	IsPlayable       *bool         `json:"isPlayable,omitempty"`
	LinkedFrom       *Track        `json:"linkedFrom,omitempty"`
	Restrictions     *Restrictions `json:"restrictions,omitempty"`
	Name             string        `json:"name"`
	Popularity       int           `json:"popularity,omitempty"`
	PreviewURL       *string       `json:"previewUrl"`
	TrackNumber      int           `json:"trackNumber"`
	Type             string        `json:"type"`
	URI              string        `json:"uri"`
	IsLocal          bool          `json:"isLocal"`
}

// SavedTrack is a track in the user's library or in a playlist.
type SavedTrack struct {
	AddedAt string `json:"addedAt"`
	Track   Track  `json:"track"`
}

// SavedAlbum is an album in the user's library.
type SavedAlbum struct {
	AddedAt string `json:"addedAt"`
	Album   Album  `json:"album"`
}

// ExplicitContent holds the user's explicit content settings.
type ExplicitContent struct {
	FilterEnabled bool `json:"filterEnabled"`
	FilterLocked  bool `json:"filterLocked"`
}

// User represents a user profile. Private fields are only set for the current user.
type User struct {
	Country         string           `json:"country,omitempty"`
	DisplayName     string           `json:"displayName"`
	Email           string           `json:"email,omitempty"`
	ExplicitContent *ExplicitContent `json:"explicitContent,omitempty"`
	ExternalURLs    ExternalURLs     `json:"externalUrls"`
	Followers       *Followers       `json:"followers,omitempty"`
	Href            string           `json:"href"`
	ID              string           `json:"id"`
	Images          []Image          `json:"images,omitempty"`
	Product         string           `json:"product,omitempty"` // premium, free, etc.
	Type            string           `json:"type"`
	URI             string           `json:"uri"`
}

// PlaylistTracks is the tracks field of a playlist: a page on full objects, only href and total on simplified ones.
type PlaylistTracks struct {
	Href  string       `json:"href"`
	Items []SavedTrack `json:"items,omitempty"`
	Total int          `json:"total"`
	Next  *string      `json:"next,omitempty"`
}

// Playlist represents a playlist (full or simplified).
type Playlist struct {
	Collaborative bool           `json:"collaborative"`
	Description   string         `json:"description"`
	ExternalURLs  ExternalURLs   `json:"externalUrls"`
	Followers     *Followers     `json:"followers,omitempty"`
	Href          string         `json:"href"`
	ID            string         `json:"id"`
	Images        []Image        `json:"images"`
	Name          string         `json:"name"`
	Owner         User           `json:"owner"`
	Public        *bool          `json:"public"`
	SnapshotID    string         `json:"snapshotId"`
	Tracks        PlaylistTracks `json:"tracks"`
	Type          string         `json:"type"`
	URI           string         `json:"uri"`
}

// PlaylistDetails is the writable subset of a playlist, sent on create and update.
//
// Field names are the wire names since request bodies are sent as-is.
type PlaylistDetails struct {
	Name          string `json:"name,omitempty"`
	Public        *bool  `json:"public,omitempty"`
	Collaborative *bool  `json:"collaborative,omitempty"`
	Description   string `json:"description,omitempty"`
}

// TrackURI references a track by URI in a playlist removal body.
type TrackURI struct {
	URI string `json:"uri"`
}

// RemoveTracksBody is the body of a playlist track removal.
type RemoveTracksBody struct {
	Tracks []TrackURI `json:"tracks"`
}

// Category is a browse category.
type Category struct {
	Href  string  `json:"href"`
	Icons []Image `json:"icons"`
	ID    string  `json:"id"`
	Name  string  `json:"name"`
}

// SnapshotResponse identifies the playlist version after a change.
type SnapshotResponse struct {
	SnapshotID string `json:"snapshotId"`
}

// NewReleases is the response of the new releases endpoint.
type NewReleases struct {
	Albums ResultSet[Album] `json:"albums"`
}

// FeaturedPlaylists is the response of the featured and category playlist endpoints.
type FeaturedPlaylists struct {
	Message   string              `json:"message,omitempty"`
	Playlists ResultSet[Playlist] `json:"playlists"`
}

// Several wrappers for the multi-id endpoints.
type (
	SeveralAlbums struct {
		Albums []Album `json:"albums"`
	}
	SeveralArtists struct {
		Artists []Artist `json:"artists"`
	}
	SeveralTracks struct {
		Tracks []Track `json:"tracks"`
	}
	TopTracks struct {
		Tracks []Track `json:"tracks"`
	}
)

// FollowedArtists is the cursor-paged response of the followed artists endpoint.
type FollowedArtists struct {
	Artists struct {
		Href    string   `json:"href"`
		Items   []Artist `json:"items"`
		Limit   int      `json:"limit"`
		Next    *string  `json:"next"`
		Total   int      `json:"total"`
		Cursors struct {
			After  string `json:"after"`
			Before string `json:"before"`
		} `json:"cursors"`
	} `json:"artists"`
}

// Device is a playback device.
type Device struct {
	ID               *string `json:"id"`
	IsActive         bool    `json:"isActive"`
	IsPrivateSession bool    `json:"isPrivateSession"`
	IsRestricted     bool    `json:"isRestricted"`
	Name             string  `json:"name"`
	Type             string  `json:"type"` // computer, smartphone, speaker
	VolumePercent    *int    `json:"volumePercent"`
	SupportsVolume   bool    `json:"supportsVolume"`
}

// Devices is the response of the available devices endpoint.
type Devices struct {
	Devices []Device `json:"devices"`
}

// Context is what a playback was started from: an artist, playlist, album or show.
type Context struct {
	Type         string       `json:"type"`
	Href         string       `json:"href"`
	ExternalURLs ExternalURLs `json:"externalUrls"`
	URI          string       `json:"uri"`
}

// Player is the playback state and the currently playing response.
type Player struct {
	Device               *Device  `json:"device,omitempty"`
	RepeatState          string   `json:"repeatState,omitempty"` // off, track, context
	ShuffleState         bool     `json:"shuffleState"`
	Context              *Context `json:"context"`
	Timestamp            int64    `json:"timestamp"`
	ProgressMS           *int     `json:"progressMs"`
	IsPlaying            bool     `json:"isPlaying"`
	Item                 *Track   `json:"item"`
	CurrentlyPlayingType string   `json:"currentlyPlayingType"` // track, episode, ad, unknown
}

// PlayHistory is one entry of the recently played tracks.
type PlayHistory struct {
	Track    Track    `json:"track"`
	PlayedAt string   `json:"playedAt"`
	Context  *Context `json:"context"`
}

// RecentlyPlayed is the cursor-paged response of the recently played endpoint.
type RecentlyPlayed struct {
	Href    string        `json:"href"`
	Items   []PlayHistory `json:"items"`
	Limit   int           `json:"limit"`
	Next    *string       `json:"next"`
	Cursors *struct {
		After  string `json:"after"`
		Before string `json:"before"`
	} `json:"cursors"`
}

// Queue is the user's playback queue.
type Queue struct {
	CurrentlyPlaying *Track  `json:"currentlyPlaying"`
	Queue            []Track `json:"queue"`
}

// TransferPlaybackBody is the body of a playback transfer.
type TransferPlaybackBody struct {
	DeviceIDs []string `json:"device_ids"`
}
