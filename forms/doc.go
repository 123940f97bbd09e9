// Package forms implements declarative multi-step input forms for chat bots.
// A form is an ordered list of fields; each inbound answer is validated and
// stored per conversation until the last field completes, at which point a
// completion callback receives the collected answers.
//
// The package is transport-agnostic: prompts go through an injected Transport
// and conversation state lives in an injected Store, so the same engine works
// against Telegram (see the telegram package), tests, or any other host loop.
package forms
