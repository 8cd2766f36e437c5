// Package web embeds the static admin frontend so the service ships as a
// single binary.
package web

import "embed"

//go:embed static
var Static embed.FS
