package ui

import (
	"picgrid/internal/datastore"
	"picgrid/internal/gallery"
)

// runMsg carries a callback that must run on the UI loop: debounce timers,
// the viewer's delayed release and storage notifications
type runMsg struct {
	fn func()
}

// dataLoadedMsg is the result of loading the metadata document
type dataLoadedMsg struct {
	store *datastore.Store
	err   error
}

// thumbLoadedMsg is the result of a thumbnail load
type thumbLoadedMsg struct {
	req gallery.LoadRequest
	res gallery.LoadResult
}

// viewerLoadedMsg is the result of a full-size image load for the viewer
type viewerLoadedMsg struct {
	id      string
	index   int
	width   int
	height  int
	picture string
	err     error
}

// clearStatusMsg clears a transient status message
type clearStatusMsg struct {
	seq int
}
