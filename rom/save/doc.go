// Package save persists pending chunks into a ROM image.
//
// A save is copy-on-write. The committed image is cloned into a private work
// image, every change is applied to the clone, and the clone replaces the
// committed contents only when every step succeeded.
//
// Save protocol:
//  1. Clone the committed image
//  2. Erase every chunk in the invalidation set, including the Old chunk of
//     every pending chunk created through the session
//  3. Run the allocation driver over the clone
//  4. Patch the owner pointer of every placed chunk
//  5. Run the post-process hook
//  6. Verify the clone (optional)
//  7. Publish the clone into the committed image
//
// Any error before step 7 leaves the committed image and its dirty ranges
// untouched. Publishing does not write to disk; Session.Commit flushes the
// dirty ranges to the backing file.
//
// Example:
//
//	img, _ := rom.Load("game.gba")
//	s := save.NewSession(img, save.DefaultOptions())
//	if err := s.InvalidatePointer(owner); err != nil { ... }
//	c := s.NewChunk(alloc.KindData, payload, true)
//	c.Owner = &owner
//	seq, _ := alloc.NewSequence([]*alloc.Chunk{c}, nil, nil)
//	report, err := s.SaveSource(seq, nil)
//	if err == nil {
//	    err = s.Commit(ctx)
//	}
//
// Sessions are NOT thread-safe.
package save
