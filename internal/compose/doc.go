// Package compose assembles the output page from the shell, draft and
// legacy documents.
//
// A run is a fixed sequence of steps:
//
//  1. load the three sources
//  2. extract the draft content between its start and end tags
//  3. extract the legacy data fragment (line range or markers) and the
//     legacy script fragment
//  4. rewrite the data fragment with the configured data renames
//  5. inject the data fragment into the draft content before the anchor
//  6. filter the script fragment (block removal, line removal, renames,
//     generated functions)
//  7. cut the shell after its anchor line
//  8. concatenate shell prefix, draft content, script and closing tags
//
// Every step either succeeds or aborts the run with a *StepError. The
// output is written only after all steps succeeded, through a temporary
// file renamed over the target, so a failed run leaves the target as it was.
//
// The generated functions injected in step 6 refer to state the host page
// must declare (the current selection id, the photo path list and the
// unsaved-changes indicator). This package only manipulates text and never
// checks that those names exist.
package compose
