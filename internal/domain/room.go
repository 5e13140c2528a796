package domain

type RoomID string

// Room is the shared meta for one collaborative session. Membership
// bookkeeping lives in core; this carries only what the whole room sees.
// HostID is set once by the first admission and never reassigned,
// even after the host disconnects.
type Room struct {
	ID       RoomID
	HostID   PlayerID
	SceneURL *string
	SceneID  *string
}
