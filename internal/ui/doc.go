// Package ui contains the Bubble Tea program for the launcher window.
// Model owns message orchestration; the launcher tab, the git tab and the
// settings form each live in their own file.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update first offers the message to the active mode (settings form,
//     directory browser, git filter or git prompt). When the mode does not
//     consume it, the message is routed through a typed handler registry.
//   - Triggers are resolved synchronously by dispatch.Resolver. The host call
//     that follows runs as a tea.Cmd through the command bus and reports back
//     with a result message.
//
// State ownership:
//   - The committed configuration and the settings draft live in
//     settings.Editor. The form only ever edits the draft.
//   - Radio and repository choices live in state.Selection and are never
//     persisted.
//   - Polled repository status lives in state.RepoStatusStore, kept current
//     by the data dispatcher from backend.Watcher events.
//
// Mouse hit testing uses bubblezone marks. Launch-target regions are copied
// into layout.Coordinator after each render so drops resolve against what
// the user actually sees.
package ui
