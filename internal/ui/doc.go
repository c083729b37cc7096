// Package ui contains the navigation state machine and the event loop that
// draws the treemap. The package is structured so Model focuses on state
// transitions, Loop on ordering and redraw discipline, and Renderer on text.
//
// Event flow:
//   - Loop.Run asks the Backend for the viewport size, clears the screen,
//     hides the cursor and draws the first frame unconditionally.
//   - Each Event from the EventSource is handled in arrival order. Idle ticks
//     only check the context. Key events go through Model.Apply, which routes
//     them through a handler registry to Move, Enter or Ascend. Resize events
//     relayout the active directory.
//   - A transition that changes state marks the model dirty; no-ops never do.
//     The loop draws and flushes once per dirty state and then marks the
//     model clean.
//   - Quit, an exhausted source or a cancelled context end the loop, which
//     clears the screen and shows the cursor again.
//
// State ownership:
//   - The directory stack and the dirty flag live on Model. The active
//     directory's layout and selection live in internal/ui/state.Level and
//     are recomputed from internal/layout whenever the level changes; no
//     layout is cached across levels.
//
// Testing:
//   - Harness pairs a Model with a Recorder backend and a Script event source
//     so the exact sequence of backend calls can be asserted without a
//     terminal.
package ui
