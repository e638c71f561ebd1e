package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

// person carries the subset of a people database document that matters
// here. The database stores one such json document per member.
type person struct {
	Minecraft struct {
		Nicks []string `json:"nicks"`
		Uuid  string   `json:"uuid"`
	} `json:"minecraft"`
}

// personEntry converts a person document into a roster entry. The last
// listed nick is the player's current one, earlier nicks are history.
// People without any Minecraft nick yield nil.
func personEntry(wmbId string, p *person, usePersonId bool) *Entry {
	if p == nil || len(p.Minecraft.Nicks) == 0 {
		return nil
	}

	entry := &Entry{
		Username:  p.Minecraft.Nicks[len(p.Minecraft.Nicks)-1],
		ProfileId: p.Minecraft.Uuid,
	}
	if usePersonId {
		entry.FileId = wmbId
	}

	return entry
}

// NewPeopleDatabaseSource reads the whole people table from the database
// behind dsn. People without a Minecraft nick are reported through the
// emitter and skipped.
func NewPeopleDatabaseSource(ctx context.Context, dsn string, usePersonId bool, emitter Emitter) (Source, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to the people database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to reach the people database: %w", err)
	}

	rows, err := pool.Query(ctx, "SELECT wmb_id, data FROM people ORDER BY wmb_id")
	if err != nil {
		return nil, fmt.Errorf("unable to query the people table: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var wmbId string
		var data []byte
		if err := rows.Scan(&wmbId, &data); err != nil {
			return nil, fmt.Errorf("unable to scan a people row: %w", err)
		}

		var p person
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("malformed person document %q: %w", wmbId, err)
		}

		if entry := personEntry(wmbId, &p, usePersonId); entry != nil {
			entries = append(entries, entry)
		} else {
			emitter.Emit("roster:person_skipped", wmbId)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to read the people table: %w", err)
	}

	return &sliceSource{entries: entries}, nil
}

// peopleDump is the shape of a version 3 people database dump.
type peopleDump struct {
	Version int                `json:"version"`
	People  map[string]*person `json:"people"`
}

// NewPeopleFileSource reads a people database json dump instead of the
// database itself. Entries come out sorted by person id: the dump's map
// carries no order of its own and batch runs should stay deterministic.
func NewPeopleFileSource(path string, usePersonId bool, emitter Emitter) (Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read the people file: %w", err)
	}

	var dump peopleDump
	if err := json.Unmarshal(content, &dump); err != nil {
		return nil, fmt.Errorf("unable to parse the people file: %w", err)
	}

	wmbIds := make([]string, 0, len(dump.People))
	for wmbId := range dump.People {
		wmbIds = append(wmbIds, wmbId)
	}
	sort.Strings(wmbIds)

	var entries []*Entry
	for _, wmbId := range wmbIds {
		if entry := personEntry(wmbId, dump.People[wmbId], usePersonId); entry != nil {
			entries = append(entries, entry)
		} else {
			emitter.Emit("roster:person_skipped", wmbId)
		}
	}

	return &sliceSource{entries: entries}, nil
}
