package assets

import (
	_ "embed"
)

// DefaultLogosCSV is a small built-in dataset so the server runs even when
// no feed or file is configured.
//
//go:embed default_logos.csv
var DefaultLogosCSV string
