package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/avsniff/sniff"
	"github.com/avsniff/sniff/aac"
	"github.com/avsniff/sniff/flac"
	"github.com/avsniff/sniff/mp3"
)

var version = "dev"

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s FILE...\n", os.Args[0])
		os.Exit(2)
	}

	slog.Debug("sniff starting", "version", version, "files", len(os.Args)-1)

	g, _ := errgroup.WithContext(context.Background())
	for _, path := range os.Args[1:] {
		path := path
		g.Go(func() error {
			return probe(path)
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("probe failed", "error", err)
		os.Exit(1)
	}
}

func probe(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	format := sniff.Detect(data)
	fmt.Printf("%s: %s\n", path, format)

	switch format {
	case sniff.FLAC:
		if fi, err := flac.Decode(flac.FirstFrame(data)); err == nil {
			slog.Debug("flac frame",
				"path", path,
				"sample_rate", fi.SampleRate,
				"channels", fi.Channels,
				"block_size", fi.BlockSize,
				"bits_per_sample", fi.BitsPerSample,
			)
		}
	case sniff.MP3:
		if offset, h, ok := mp3.Scan(data); ok {
			slog.Debug("mp3 frame",
				"path", path,
				"offset", offset,
				"version", h.Version.String(),
				"layer", h.Layer.String(),
				"bitrate_kbps", h.BitrateKbps,
				"sample_rate", h.SampleRate,
				"frame_length", h.FrameLength,
			)
		}
	case sniff.AAC:
		if h, err := aac.ParseHeader(data); err == nil {
			slog.Debug("adts frame",
				"path", path,
				"sample_rate", h.SampleRate,
				"channels", h.Channels,
				"frame_length", h.FrameLength,
			)
		}
		if frames, err := aac.Frames(data); err == nil && len(frames) > 0 {
			slog.Debug("adts stream",
				"path", path,
				"frames", len(frames),
				"sample_rate", frames[0].SampleRate,
				"channels", frames[0].Channels,
			)
		}
	}
	return nil
}
