package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"picgrid/internal/datastore"
	"picgrid/internal/domain"
	"picgrid/internal/gallery"
	"picgrid/internal/imageload"
	"picgrid/internal/logging"
)

// loadData returns a command that loads the metadata document
func loadData(ctx context.Context, source string) tea.Cmd {
	return func() tea.Msg {
		store, err := datastore.Load(ctx, source)
		return dataLoadedMsg{store: store, err: err}
	}
}

// loadThumbs returns one command per thumbnail request. A cell holds two
// pixel rows, so the decode box is twice as tall as the card area.
func loadThumbs(ctx context.Context, loader *imageload.Loader, reqs []gallery.LoadRequest) tea.Cmd {
	if loader == nil || len(reqs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		req := req
		cmds = append(cmds, func() tea.Msg {
			img, err := loader.Load(ctx, req.Image, req.Width, req.Height*2)
			if err != nil {
				return thumbLoadedMsg{req: req, res: gallery.LoadResult{Err: err}}
			}
			return thumbLoadedMsg{req: req, res: gallery.LoadResult{Rendered: imageload.HalfBlock(img)}}
		})
	}
	return tea.Batch(cmds...)
}

// loadViewerImage returns a command that decodes img for a width x height
// cell picture area
func loadViewerImage(ctx context.Context, loader *imageload.Loader, img domain.Image, index, width, height int) tea.Cmd {
	if loader == nil {
		return nil
	}
	return func() tea.Msg {
		decoded, err := loader.LoadFull(ctx, img, width, height*2)
		msg := viewerLoadedMsg{id: img.ID, index: index, width: width, height: height, err: err}
		if err == nil {
			msg.picture = imageload.HalfBlock(decoded)
		}
		return msg
	}
}

// preloader warms the loader cache for viewer neighbours in the background
type preloader struct {
	ctx    context.Context
	loader *imageload.Loader
	size   func() (int, int)
}

func (p preloader) Preload(img domain.Image) {
	if p.loader == nil {
		return
	}
	w, h := p.size()
	if p.loader.Cached(img, w, h*2) {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.Warn("Preload of %s panicked: %v", img.ID, r)
			}
		}()
		p.loader.Preload(p.ctx, img, w, h*2)
	}()
}
