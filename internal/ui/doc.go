// Package ui implements a terminal remote for Spotify Connect using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [NowPlayingView] : the current track, progress, device, volume, shuffle and repeat state
//  2. [DeviceListView] : available devices; selecting one transfers playback to it
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the [Msg] union
// type. Every API call runs as a [tea.Cmd] against a [Player], and playback state is polled on a fixed interval
// since the Web API has no push channel.
//
// Keyboard bindings are shown with charmbracelet/bubbles/help; press ? for the full list.
package ui
