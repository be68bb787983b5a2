// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package assistant answers free-form chat messages with a text completion
// provider (Gemini by default). When the request names a candidate, a short
// summary of their money report is prepended to the prompt. Answers are
// returned as plain text.
package assistant
