package core

import (
	"testing"
	"time"

	"github.com/karunchanna/SplatsExperiment/internal/domain"
)

func TestRegistry_CreateAndGet(t *testing.T) {
	reg := NewRegistry(time.Minute)

	room := reg.Create()
	if len(room.ID()) != 8 {
		t.Errorf("room id %q, want 8-char short id", room.ID())
	}

	got, ok := reg.Get(room.ID())
	if !ok || got != room {
		t.Fatalf("Get(%q) did not return the created room", room.ID())
	}

	if _, ok := reg.Get("missing1"); ok {
		t.Errorf("Get on an unknown id reported a room")
	}

	other := reg.Create()
	if other.ID() == room.ID() {
		t.Errorf("two live rooms share id %q", room.ID())
	}
}

func TestRegistry_ReclaimDeletesRoomThatStaysEmpty(t *testing.T) {
	reg := NewRegistry(30 * time.Millisecond)

	room := reg.Create()
	reg.ScheduleReclaim(room.ID())

	time.Sleep(100 * time.Millisecond)
	if _, ok := reg.Get(room.ID()); ok {
		t.Fatalf("empty room still present after the grace window")
	}
}

func TestRegistry_ReclaimSparesRepopulatedRoom(t *testing.T) {
	reg := NewRegistry(50 * time.Millisecond)

	room := reg.Create()
	reg.ScheduleReclaim(room.ID())

	// Join during the grace window: the stale timer must observe the live
	// count and keep the room.
	room.Join(&fakeConn{}, "late")

	time.Sleep(150 * time.Millisecond)
	if _, ok := reg.Get(room.ID()); !ok {
		t.Fatalf("repopulated room was reclaimed")
	}
}

func TestRegistry_OverlappingReclaimsAreBenign(t *testing.T) {
	reg := NewRegistry(30 * time.Millisecond)

	room := reg.Create()
	id := room.ID()
	reg.ScheduleReclaim(id)
	reg.ScheduleReclaim(id)
	reg.ScheduleReclaim(id)

	time.Sleep(100 * time.Millisecond)
	if _, ok := reg.Get(id); ok {
		t.Fatalf("room survived overlapping reclaim timers")
	}
	// Firing against an already-deleted room must not panic.
	reg.ScheduleReclaim(id)
	time.Sleep(60 * time.Millisecond)
}

func TestRegistry_ReclaimOfOccupiedRoomNoops(t *testing.T) {
	reg := NewRegistry(20 * time.Millisecond)

	room := reg.Create()
	room.Join(&fakeConn{}, "resident")
	reg.ScheduleReclaim(room.ID())

	time.Sleep(80 * time.Millisecond)
	if _, ok := reg.Get(room.ID()); !ok {
		t.Fatalf("occupied room was reclaimed")
	}
	if reg.Len() != 1 {
		t.Errorf("registry len = %d, want 1", reg.Len())
	}
}

func TestRegistry_AdmitAfterGraceWindowFails(t *testing.T) {
	reg := NewRegistry(20 * time.Millisecond)

	room := reg.Create()
	id := room.ID()
	reg.ScheduleReclaim(id)

	time.Sleep(80 * time.Millisecond)
	if _, _, ok := reg.Admit(id, &fakeConn{}, "late"); ok {
		t.Fatalf("player admitted into a reclaimed room")
	}
	if room.PlayerCount() != 0 {
		t.Errorf("reclaimed room holds %d players", room.PlayerCount())
	}
}

func TestRegistry_AdmitNeverLandsInReclaimedRoom(t *testing.T) {
	// Race admissions against the reclaim timer: whenever an admit
	// succeeds, the room must still be registered — a room holding a
	// player is never deleted.
	for i := 0; i < 25; i++ {
		reg := NewRegistry(5 * time.Millisecond)
		room := reg.Create()
		id := room.ID()
		reg.ScheduleReclaim(id)

		time.Sleep(time.Duration(i%3) * 3 * time.Millisecond)
		_, player, ok := reg.Admit(id, &fakeConn{}, "racer")
		if !ok {
			continue
		}
		if _, live := reg.Get(id); !live {
			t.Fatalf("player %s admitted into a room the registry deleted", player.ID)
		}
		// A timer firing after the admission must spare the room too.
		time.Sleep(20 * time.Millisecond)
		if _, live := reg.Get(id); !live {
			t.Fatalf("occupied room reclaimed after a raced admission")
		}
	}
}

func TestRegistry_GetDoesNotCreate(t *testing.T) {
	reg := NewRegistry(time.Minute)
	if _, ok := reg.Get(domain.RoomID("nothere1")); ok {
		t.Fatalf("lookup created a room")
	}
	if reg.Len() != 0 {
		t.Errorf("registry len = %d after lookups, want 0", reg.Len())
	}
}
