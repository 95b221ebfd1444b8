// Package client is the API-consumer side of the application: a typed HTTP
// client and a predictable state container. The container holds the
// last-known server state and is updated only by reducing tagged operation
// outcomes; views read state, they never write it.
package client

import (
	"fmt"

	"devconnect/internal/github"
	"devconnect/internal/model"
)

// State is the single authoritative state tree. Slices are independent: an
// outcome for one slice never touches another, except alerts which any
// failure may raise.
type State struct {
	Auth    AuthState
	Profile ProfileState
	Posts   PostsState
	Alerts  []Alert
}

// AuthState mirrors the authenticated subject.
type AuthState struct {
	Subject         *model.User
	IsAuthenticated bool
	Loading         bool
}

// ProfileState mirrors the last fetched profile data.
type ProfileState struct {
	Profile  *model.Profile
	Profiles []model.Profile
	Repos    []github.Repo
	Loading  bool
	Err      *Fault
}

// PostsState mirrors the last fetched posts.
type PostsState struct {
	Posts   []model.Post
	Post    *model.Post
	Loading bool
	Err     *Fault
}

// Alert is a transient, independently dismissable notification.
type Alert struct {
	ID      string
	Message string
	Kind    string // "success", "danger", ...
}

// Fault is the typed error payload carried by failure outcomes. It mirrors
// the server's structured error body plus the HTTP status.
type Fault struct {
	Status  int
	Code    string
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s (%d): %s", f.Code, f.Status, f.Message)
}

// InitialState returns the state before any outcome has been reduced. The
// loading flags start true, matching a UI that fetches on mount.
func InitialState() State {
	return State{
		Auth:    AuthState{Loading: true},
		Profile: ProfileState{Loading: true},
		Posts:   PostsState{Loading: true},
	}
}
