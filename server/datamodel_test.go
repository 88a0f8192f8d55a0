package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/livelog/livelog/server/store/types"
)

func TestEntryFromWire(t *testing.T) {
	event := types.Uid(42)
	entryType := types.Uid(7)
	start := time.Date(2026, 8, 14, 21, 37, 45, 0, time.UTC)
	end := time.Date(2026, 8, 14, 21, 41, 12, 0, time.UTC)

	wire := &MsgLogEntry{
		// A client-supplied event id is ignored: the topic owns the entry.
		Event:             types.Uid(999).String(),
		StartAt:           &start,
		EndAt:             &end,
		EndIncomplete:     true,
		EntryType:         entryType.String(),
		Description:       "bus crash",
		MediaLinks:        []string{"https://clips.example.com/abc"},
		SubmitterOrWinner: "alice",
		VideoEditState:    "marked",
		PosterMoment:      true,
		Notes:             "check the overlay",
	}

	got := entryFromWire(wire, event)
	if got == nil {
		t.Fatal("entryFromWire returned nil")
	}

	wantEnd := time.Date(2026, 8, 14, 21, 41, 0, 0, time.UTC)
	want := &types.LogEntry{
		Event:   event,
		StartAt: time.Date(2026, 8, 14, 21, 37, 0, 0, time.UTC),
		EndAt:   &wantEnd,
		// A concrete end time overrides the incomplete marker.
		EndIncomplete:       false,
		EntryType:           entryType,
		Description:         "bus crash",
		MediaLinks:          []string{"https://clips.example.com/abc"},
		SubmitterOrWinner:   "alice",
		VideoEditState:      types.VideoMarked,
		PosterMoment:        true,
		Notes:               "check the overlay",
		MissingGiveawayInfo: false,
	}

	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(types.ObjHeader{})); diff != "" {
		t.Errorf("entryFromWire mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryFromWireNoEnd(t *testing.T) {
	got := entryFromWire(&MsgLogEntry{Description: "ongoing", EndIncomplete: true}, types.Uid(42))
	if got == nil {
		t.Fatal("entryFromWire returned nil")
	}
	if got.EndAt != nil {
		t.Error("EndAt expected to stay nil.")
	}
	if !got.EndIncomplete {
		t.Error("EndIncomplete expected to be preserved without an end time.")
	}
}

func TestEntryToWire(t *testing.T) {
	event := types.Uid(42)
	editor := types.Uid(9)
	sortKey := int32(3)
	end := time.Date(2026, 8, 14, 21, 41, 0, 0, time.UTC)

	entry := &types.LogEntry{
		Event:             event,
		StartAt:           time.Date(2026, 8, 14, 21, 37, 0, 0, time.UTC),
		EndAt:             &end,
		EntryType:         types.Uid(7),
		Description:       "bus crash",
		MediaLinks:        []string{"https://clips.example.com/abc"},
		SubmitterOrWinner: "alice",
		Tags: []types.Tag{
			func() types.Tag {
				tag := types.Tag{Name: "crash"}
				tag.SetUid(types.Uid(5))
				return tag
			}(),
		},
		VideoEditState: types.VideoDone,
		PosterMoment:   true,
		Notes:          "check the overlay",
		Editor:         &editor,
		SortKey:        &sortKey,
		Parent:         types.Uid(800),
	}
	entry.SetUid(types.Uid(900))
	entry.InitTimes()

	got := entryToWire(entry)
	if got == nil {
		t.Fatal("entryToWire returned nil")
	}

	want := &MsgLogEntry{
		Id:                types.Uid(900).String(),
		Event:             event.String(),
		StartAt:           &entry.StartAt,
		EndAt:             &end,
		EntryType:         types.Uid(7).String(),
		Description:       "bus crash",
		MediaLinks:        []string{"https://clips.example.com/abc"},
		SubmitterOrWinner: "alice",
		Tags:              []MsgTag{{Id: types.Uid(5).String(), Name: "crash"}},
		VideoEditState:    "done",
		PosterMoment:      true,
		Notes:             "check the overlay",
		Editor:            editor.String(),
		SortKey:           &sortKey,
		Parent:            types.Uid(800).String(),
		CreatedAt:         &entry.CreatedAt,
		UpdatedAt:         &entry.UpdatedAt,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entryToWire mismatch (-want +got):\n%s", diff)
	}
}

func TestUserToWire(t *testing.T) {
	usr := &types.User{Name: "alice", IsAdmin: true, Color: types.RGB{R: 10, G: 20, B: 30}}
	usr.SetUid(types.Uid(1))

	got := userToWire(usr)
	want := &MsgUser{
		Id:      types.Uid(1).String(),
		Name:    "alice",
		IsAdmin: true,
		Color:   &types.RGB{R: 10, G: 20, B: 30},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("userToWire mismatch (-want +got):\n%s", diff)
	}

	if userToWire(nil) != nil {
		t.Error("userToWire(nil) expected to be nil.")
	}
}

func TestEventFromWire(t *testing.T) {
	start := time.Date(2026, 11, 13, 18, 0, 0, 0, time.UTC)
	got := eventFromWire(&MsgEvent{Name: "Desert Bus 2026", StartAt: &start})
	if got == nil {
		t.Fatal("eventFromWire returned nil")
	}
	if got.Name != "Desert Bus 2026" {
		t.Errorf("Event name: expected 'Desert Bus 2026', got '%s'", got.Name)
	}
	if !got.StartAt.Equal(start) {
		t.Errorf("Event start: expected %v, got %v", start, got.StartAt)
	}
	if !got.Uid().IsZero() {
		t.Error("Event without an id expected to have a zero uid.")
	}
}

func TestParseLogName(t *testing.T) {
	event := types.Uid(42)
	if got := types.ParseLogName(event.LogName()); got != event {
		t.Errorf("ParseLogName round trip: expected %s, got %s", event.String(), got.String())
	}
	if got := types.ParseLogName("lognotvalid"); !got.IsZero() {
		t.Errorf("ParseLogName of garbage: expected zero, got %s", got.String())
	}
	if got := types.ParseLogName("admusers"); !got.IsZero() {
		t.Errorf("ParseLogName of non-log name: expected zero, got %s", got.String())
	}
}
