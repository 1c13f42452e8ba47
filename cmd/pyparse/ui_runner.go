package main

import (
	"context"
	"os"

	"pyparse/internal/driver"
	"pyparse/internal/ui"
)

type parseOutcome struct {
	results []*driver.ParseResult
	err     error
}

// parseDirWithUI runs ParseDir while the progress view renders its events on stderr.
func parseDirWithUI(ctx context.Context, root string, opts driver.Options) ([]*driver.ParseResult, error) {
	files, err := driver.ListSources(root)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ParseDir(ctx, root, optsCopy)
		outcomeCh <- parseOutcome{results: res, err: err}
		close(events)
	}()

	uiErr := ui.Run("parse "+root, files, events, os.Stderr)
	if uiErr != nil {
		// модель больше не читает канал
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
