// Package web embeds the dashboard's templates and static assets.
package web

import "embed"

// TemplatesFS holds the html/template sources.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds CSS and other assets served under /static/.
//
//go:embed static/*
var StaticFS embed.FS
