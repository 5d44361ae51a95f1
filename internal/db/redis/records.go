package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/partpilot/internal/db"
)

// Records are stored as plain string values at {collection}:{id}.
// A sorted set at {collection}:index keeps ids ordered by score.

func recordKey(collection, id string) string { return collection + ":" + id }

func indexKey(collection string) string { return collection + ":index" }

// PutRecord writes the value and its index entry in one round-trip.
func (s *Store) PutRecord(ctx context.Context, collection string, rec db.Record) error {
	cmds := rueidis.Commands{
		s.b().Set().Key(recordKey(collection, rec.ID)).Value(string(rec.Data)).Build(),
		s.b().Zadd().Key(indexKey(collection)).ScoreMember().ScoreMember(float64(rec.Score), rec.ID).Build(),
	}
	ops := []string{db.OpSet, db.OpZAdd}

	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: ops[i], Err: fmt.Errorf("record %s: %w", rec.ID, err)}
		}
	}
	return nil
}

// GetRecord returns the stored value of a record.
func (s *Store) GetRecord(ctx context.Context, collection, id string) ([]byte, error) {
	return s.Get(ctx, recordKey(collection, id))
}

// ListRecords reads ids from the index newest first, then fetches values with MGET.
// Ids whose value has vanished are skipped.
func (s *Store) ListRecords(ctx context.Context, collection string, limit int) ([][]byte, error) {
	stop := "-1"
	if limit > 0 {
		stop = strconv.Itoa(limit - 1)
	}

	cmd := s.b().Zrange().Key(indexKey(collection)).Min("0").Max(stop).Rev().Build()
	ids, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	if len(ids) == 0 {
		return [][]byte{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(collection, id)
	}

	msgs, err := s.do(ctx, s.b().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpMGet, Err: err}
	}

	out := make([][]byte, 0, len(msgs))
	for i := range msgs {
		data, err := msgs[i].AsBytes()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue
			}
			return nil, &db.Error{Op: db.OpMGet, Err: err}
		}
		out = append(out, data)
	}
	return out, nil
}

// DeleteRecord removes the value and its index entry.
func (s *Store) DeleteRecord(ctx context.Context, collection, id string) error {
	cmds := rueidis.Commands{
		s.b().Del().Key(recordKey(collection, id)).Build(),
		s.b().Zrem().Key(indexKey(collection)).Member(id).Build(),
	}
	results := s.client.DoMulti(ctx, cmds...)

	deleted, err := results[0].AsInt64()
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if err := results[1].Error(); err != nil {
		return &db.Error{Op: db.OpZRem, Err: err}
	}
	if deleted == 0 {
		return db.ErrKeyNotFound
	}
	return nil
}
