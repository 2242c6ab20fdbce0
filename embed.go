package compuclinic

import "embed"

// EmbeddedAssets contains static assets shipped in the binary: favicon.svg
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
