package sarc

import (
	"context"
	"fmt"

	sarccore "github.com/meigma/sarc/core"
	"github.com/meigma/sarc/source"
)

// Open loads the archive at location and parses it.
//
// location is a local path, a file:// URL, or an http(s) URL. Unlike
// [New], Open returns an error when the archive fails to parse.
func Open(ctx context.Context, location string, opts ...OpenOption) (*Archive, error) {
	var cfg openConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	srcOpts := cfg.source
	coreOpts := cfg.core
	if cfg.logger != nil {
		srcOpts = append(srcOpts, source.WithLogger(cfg.logger))
		coreOpts = append(coreOpts, sarccore.WithLogger(cfg.logger))
	}

	data, err := source.Load(ctx, location, srcOpts...)
	if err != nil {
		return nil, err
	}

	a := sarccore.New(data, coreOpts...)
	if err := a.Err(); err != nil {
		return nil, fmt.Errorf("open %s: %w", location, err)
	}
	return a, nil
}
