// Package newswire provides an AI-driven extraction pipeline for news
// listing pages. It fetches configured listing URLs, narrows the HTML to a
// selector-matched subtree, asks a generative model to extract structured
// article records, validates and deduplicates the candidates, and persists
// them idempotently.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package newswire
