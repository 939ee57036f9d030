package redis

import (
	goredis "github.com/redis/go-redis/v9"
)

// Lua scripts for the room mutations. Each script is the single atomic step
// for its operation: the existence check and the write happen inside Redis,
// so two racing callers can never both observe "absent" and both insert.

// createRoomScript conditionally inserts a room. Returns 0 if the code is
// already taken, 1 on insert.
// KEYS: [1]=room hash, [2]=room code set
// ARGV: [1]=name, [2]=created_at ms, [3]=code
var createRoomScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return 0
end
redis.call('HSET', KEYS[1], 'name', ARGV[1], 'created_at', ARGV[2])
redis.call('SADD', KEYS[2], ARGV[3])
return 1
`)

// addMemberScript appends a member to an existing room. The sentiment hash is
// keyed by the row's 1-based list position, not the member ID, so a rejoining
// member gets a fresh row with its own sentiment and earlier rows stay
// untouched. The per-room position hash records where the member first joined
// (first join wins) for later sentiment updates; the global index records
// which room. Returns 0 if the room does not exist, otherwise the new member
// count.
// KEYS: [1]=room hash, [2]=member list, [3]=sentiment hash, [4]=member position hash, [5]=member index
// ARGV: [1]=member ID, [2]=sentiment, [3]=code
var addMemberScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return 0
end
local n = redis.call('RPUSH', KEYS[2], ARGV[1])
redis.call('HSET', KEYS[3], n, ARGV[2])
redis.call('HSETNX', KEYS[4], ARGV[1], n)
redis.call('HSETNX', KEYS[5], ARGV[1], ARGV[3])
return n
`)

// setSentimentScript overwrites the sentiment of the member's first row in
// the room, resolved through the position hash. Returns 0 on a zero-match so
// the caller can surface member-not-found instead of silently succeeding.
// KEYS: [1]=member position hash, [2]=sentiment hash
// ARGV: [1]=member ID, [2]=sentiment
var setSentimentScript = goredis.NewScript(`
local pos = redis.call('HGET', KEYS[1], ARGV[1])
if not pos then
  return 0
end
redis.call('HSET', KEYS[2], pos, ARGV[2])
return 1
`)
