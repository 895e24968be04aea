// Package gesture turns raw pointer movement into an "advance" intent.
//
// A Tracker owns a single gesture at a time and moves through
//
//	Idle -> Tracking(undetermined) -> Tracking(horizontal) -> Released -> Idle
//
// Horizontal movement is damped (offset = dx * 0.3 by default) and drives
// the Feedback continuously. When the gesture ends, the final damped offset
// is compared against the threshold (100px by default); a gesture beyond it
// asks the Navigator for exactly one navigation. The sign of the offset is
// ignored: there is only one direction, "show another album".
//
// Touch and mouse differ only in how eagerly the horizontal axis locks:
// touch locks on the first move with |dx| > |dy|, mouse also requires
// |dx| > 10px so ordinary clicks are not mistaken for drags.
//
// # Basic Usage
//
//	tracker := gesture.NewTracker(gesture.KindMouse, adapter, gate)
//	tracker.Start(gesture.Sample{X: 0, Y: 0}, gesture.TargetSurface)
//	tracker.Move(gesture.Sample{X: -400, Y: 0}) // offset -120
//	out := tracker.End()                        // out.Committed == true
package gesture
