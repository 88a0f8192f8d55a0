/******************************************************************************
 *
 *  Description :
 *
 *    Topic initialization routines: name validation, permission resolution
 *    and initial snapshot assembly.
 *
 *****************************************************************************/

package main

import (
	"time"

	"github.com/livelog/livelog/server/store"
	"github.com/livelog/livelog/server/store/types"
)

// Administrative topics. Each is the live view of one dataset; all of them
// require an administrator account.
var admTopics = map[string]bool{
	"admusers":       true,
	"admevents":      true,
	"admgroups":      true,
	"admgroupevents": true,
	"admgroupusers":  true,
	"admtypes":       true,
	"admtypeevents":  true,
	"admtags":        true,
	"admeditors":     true,
	"admtabs":        true,
	"admpages":       true,
	"admapps":        true,
}

// initTopic configures a newly created topic from its name.
func initTopic(t *Topic) error {
	t.cat = types.GetTopicCat(t.name)
	switch t.cat {
	case types.TopicCatLog:
		t.event = types.ParseLogName(t.name)
		if t.event.IsZero() {
			return types.ErrNotFound
		}
	case types.TopicCatAdm:
		if !admTopics[t.name] {
			return types.ErrNotFound
		}
	default:
		return types.ErrNotFound
	}
	return nil
}

// topicPermission resolves the caller's level on a topic. Runs on the
// session goroutine before the join request is sent to the hub; the result
// is cached for the life of the subscription.
func topicPermission(cat types.TopicCat, event types.Uid, usr *types.User) (types.PermissionLevel, error) {
	switch cat {
	case types.TopicCatLog:
		level, err := store.Groups.HighestForUserEvent(usr.Uid(), event)
		if err != nil {
			return types.PermissionNone, err
		}
		if level == types.PermissionNone {
			return types.PermissionNone, types.ErrPermissionDenied
		}
		return level, nil

	case types.TopicCatAdm:
		if !usr.IsAdmin {
			return types.PermissionNone, types.ErrPermissionDenied
		}
		return types.PermissionSupervisor, nil
	}

	return types.PermissionNone, types.ErrPermissionDenied
}

// buildSnapshot reads the complete current state of the topic's dataset.
// Runs on the session goroutine before registration, so a stalled read
// blocks only the one connection. The broadcast that immediately follows
// registration may repeat a change already visible here; clients apply
// updates idempotently.
func buildSnapshot(topic string, cat types.TopicCat, event types.Uid, level types.PermissionLevel, ts time.Time) (*ServerComMessage, error) {
	snap := &MsgServerSnap{Topic: topic, Timestamp: ts}

	var err error
	if cat == types.TopicCatLog {
		err = buildLogSnapshot(snap, event, level)
	} else {
		err = buildAdmSnapshot(snap, topic)
	}
	if err != nil {
		return nil, err
	}

	return &ServerComMessage{Snap: snap, Timestamp: ts}, nil
}

func buildLogSnapshot(snap *MsgServerSnap, event types.Uid, level types.PermissionLevel) error {
	ev, err := store.Events.Get(event)
	if err != nil {
		return err
	}
	if ev == nil {
		return types.ErrNotFound
	}

	ets, err := store.Types.GetForEvent(event)
	if err != nil {
		return err
	}
	tags, err := store.Tags.GetAll()
	if err != nil {
		return err
	}
	editors, err := store.Editors.GetForEvent(event)
	if err != nil {
		return err
	}
	entries, err := store.Entries.GetAllForEvent(event)
	if err != nil {
		return err
	}
	tabs, err := store.Tabs.GetForEvent(event)
	if err != nil {
		return err
	}
	pages, err := store.Pages.GetForEvent(event)
	if err != nil {
		return err
	}

	snap.Event = eventToWire(ev)
	snap.Level = level.String()
	snap.Types = typesToWire(ets)
	snap.Tags = tagsToWire(tags)
	snap.Editors = usersToWire(editors)
	snap.Entries = entriesToWire(entries)
	snap.Tabs = tabsToWire(tabs)
	snap.Pages = pagesToWire(pages)
	return nil
}

func buildAdmSnapshot(snap *MsgServerSnap, topic string) error {
	switch topic {
	case "admusers":
		users, err := store.Users.GetAll()
		if err != nil {
			return err
		}
		snap.Users = usersToWire(users)

	case "admevents":
		events, err := store.Events.GetAll()
		if err != nil {
			return err
		}
		snap.Events = eventsToWire(events)

	case "admgroups":
		groups, err := store.Groups.GetAll()
		if err != nil {
			return err
		}
		snap.Groups = groupsToWire(groups)

	case "admgroupevents":
		grants, err := store.Groups.GrantsGetAll()
		if err != nil {
			return err
		}
		snap.Grants = grantsToWire(grants)

	case "admgroupusers":
		members, err := store.Groups.MembersGetAll()
		if err != nil {
			return err
		}
		snap.Members = membersToWire(members)

	case "admtypes":
		ets, err := store.Types.GetAll()
		if err != nil {
			return err
		}
		snap.Types = typesToWire(ets)

	case "admtypeevents":
		pairs, err := store.Types.EventsGetAll()
		if err != nil {
			return err
		}
		snap.TypeEvents = typeEventsToWire(pairs)

	case "admtags":
		tags, err := store.Tags.GetAll()
		if err != nil {
			return err
		}
		snap.Tags = tagsToWire(tags)

	case "admeditors":
		pairs, err := store.Editors.GetAll()
		if err != nil {
			return err
		}
		snap.Assignments = editorsToWire(pairs)

	case "admtabs":
		tabs, err := store.Tabs.GetAll()
		if err != nil {
			return err
		}
		snap.Tabs = tabsToWire(tabs)

	case "admpages":
		pages, err := store.Pages.GetAll()
		if err != nil {
			return err
		}
		snap.Pages = pagesToWire(pages)

	case "admapps":
		apps, err := store.Apps.GetAll()
		if err != nil {
			return err
		}
		snap.Apps = appsToWire(apps)

	default:
		return types.ErrNotFound
	}
	return nil
}
