// Package webtab turns a website into a table. The user supplies a URL, a
// natural language prompt, and optionally a handful of typed schema fields;
// an external extraction service does the fetching and extraction, and this
// package shapes whatever comes back into a renderable table inside a
// chat-style session.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., firecrawl/, slog/).
package webtab
