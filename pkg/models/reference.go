package models

import "fmt"

// Reference points from one object to one or more others, either implicitly
// to a single target collection or explicitly to several, per spec.md §3.
// A Reference built for submission carries only UUIDs; one decoded back
// from a search reply that asked for the traversal also carries the
// realized Objects, each with its own properties, metadata, and possibly
// further nested References.
type Reference struct {
	UUIDs             []string
	TargetCollections []string // empty for an implicit single-target reference
	Objects           []Object // populated only when the traversal was requested and resolved
}

// ToUUIDs builds an implicit single-target reference.
func ToUUIDs(uuids ...string) Reference {
	return Reference{UUIDs: uuids}
}

// ToMultiTarget builds an explicit reference naming its target collection
// for every uuid, required when a property can point at more than one
// collection.
func ToMultiTarget(targetCollection string, uuids ...string) Reference {
	targets := make([]string, len(uuids))
	for i := range targets {
		targets[i] = targetCollection
	}
	return Reference{UUIDs: uuids, TargetCollections: targets}
}

// Beacons renders the reference as wire beacons of the form
// weaviate://localhost/[<Collection>/]<uuid>, per spec.md §3/§6.
func (r Reference) Beacons() []string {
	beacons := make([]string, len(r.UUIDs))
	for i, uuid := range r.UUIDs {
		if i < len(r.TargetCollections) && r.TargetCollections[i] != "" {
			beacons[i] = fmt.Sprintf("weaviate://localhost/%s/%s", r.TargetCollections[i], uuid)
			continue
		}
		beacons[i] = fmt.Sprintf("weaviate://localhost/%s", uuid)
	}
	return beacons
}

// ParseBeacon splits a beacon into its optional collection and uuid parts.
// Returns ok=false if beacon is not of the expected form.
func ParseBeacon(beacon string) (collection, uuid string, ok bool) {
	const prefix = "weaviate://localhost/"
	if len(beacon) <= len(prefix) || beacon[:len(prefix)] != prefix {
		return "", "", false
	}
	rest := beacon[len(prefix):]
	slash := -1
	for i, c := range rest {
		if c == '/' {
			slash = i
			break
		}
	}
	if slash < 0 {
		return "", rest, true
	}
	return rest[:slash], rest[slash+1:], true
}
