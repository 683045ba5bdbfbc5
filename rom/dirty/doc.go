// Package dirty tracks which byte ranges of a ROM image changed since it was
// last written, so a save can be persisted by rewriting only those ranges.
//
// # Usage
//
//	dt := dirty.NewTracker()
//	dt.Add(0x7F0000, 0x120) // chunk written
//	dt.Add(0x0123A4, 4)     // pointer patched
//
//	f, _ := os.OpenFile(path, os.O_RDWR, 0)
//	err := dt.Flush(ctx, f, img.Bytes(), dirty.FlushAuto)
//
// # Page-Level Granularity
//
// Ranges are rounded out to 4 KiB pages, sorted and merged before writing:
//
//	Dirty pages: [0, 1, 2, 5, 6] → Ranges: [0x0-0x3000, 0x5000-0x7000]
//
// A ROM that grew during a save is extended with Truncate before the ranges are
// written; the appended region is always dirty.
//
// # Thread Safety
//
// Tracker instances are not thread-safe.
package dirty
