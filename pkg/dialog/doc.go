// Package dialog models declarative forms as a root element holding
// sections of rows, and provides the entry rows that edit text inside them.
//
// A host (see package table) asks each visible row for a Cell. Rows borrow
// cells from the host's reuse pool and attach their own long-lived views to
// them, so a row keeps its editing state while the cells it is drawn in come
// and go with scrolling.
//
// # Quick Start
//
//	notes := dialog.NewMultilineEntryElement("Notes", "")
//	notes.SetPlaceholder("Anything else?")
//	notes.Changed = func(e dialog.Element) { saveDraft(e.Summary()) }
//
//	root := dialog.NewRoot("Feedback",
//	    dialog.NewSection("About you",
//	        dialog.NewEntryElement("Name", "Jane Doe", ""),
//	        dialog.NewEntryElement("Email", "jane@example.com", ""),
//	    ),
//	    dialog.NewSection("Details", notes),
//	)
//
// # Caption alignment
//
// Entry rows in one section line their inputs up at a shared offset. The
// offset is computed by AlignmentResolver the first time any entry row of the
// section is displayed and cached on the section; adding, removing or
// re-captioning rows drops the cache.
//
// # Threading
//
// Everything in this package runs on the host's event loop. Nothing locks,
// and scroll requests posted to the host are not waited on.
package dialog
