// ABOUTME: Collection schema per version and the additive upgrade path
// ABOUTME: Collections are only ever created, never dropped or renamed
package storage

import (
	"context"
	"fmt"
)

// StoreName identifies the store in exports
const StoreName = "MindSpaceDB"

// SchemaVersion is the version this build upgrades every store to
const SchemaVersion = 2

// Collection names
const (
	MoodsCollection         = "moods"
	StressQuizzesCollection = "stressQuizzes"
	JournalsCollection      = "journals"
)

type collectionSchema struct {
	name string
	// since is the schema version that introduced the collection
	since int
	// always is ensured on every upgrade regardless of the previous version
	always bool
}

var collectionSchemas = []collectionSchema{
	{name: MoodsCollection, since: 1, always: true},
	{name: StressQuizzesCollection, since: 2},
	{name: JournalsCollection, since: 2},
}

// Collections returns the collection names that exist at version
func Collections(version int) []string {
	var names []string
	for _, c := range collectionSchemas {
		if c.since <= version {
			names = append(names, c.name)
		}
	}
	return names
}

// Upgrade evolves b from version from to version to and returns the
// collections it created. Collections introduced after from are created if
// absent; moods is ensured unconditionally. With from == to and all
// collections present it changes nothing.
func Upgrade(ctx context.Context, b Backend, from, to int) ([]string, error) {
	if from > to {
		return nil, fmt.Errorf("stored schema v%d is newer than supported v%d", from, to)
	}

	var created []string
	for _, c := range collectionSchemas {
		if c.since > to {
			continue
		}
		if !c.always && from >= c.since {
			continue
		}
		exists, err := b.HasCollection(ctx, c.name)
		if err != nil {
			return created, fmt.Errorf("check collection %s: %w", c.name, err)
		}
		if exists {
			continue
		}
		if err := b.CreateCollection(ctx, c.name); err != nil {
			return created, fmt.Errorf("create collection %s: %w", c.name, err)
		}
		created = append(created, c.name)
	}

	if from < to {
		if err := b.SetVersion(ctx, to); err != nil {
			return created, fmt.Errorf("record schema v%d: %w", to, err)
		}
	}
	return created, nil
}
