package session

import "github.com/redis/go-redis/v9"

// sessionManagerScript implements the five session operations as one atomic
// server-side procedure. KEYS[1] is the per-user id counter, KEYS[2] the
// sessionId -> lastAccessTime hash, KEYS[3] the sessionId -> info hash.
// ARGV[1] selects the operation.
//
// The counter in KEYS[1] is incremented by "new" and never reset, not even by
// "revoke_all_except", so a session id is never reallocated for the lifetime
// of the data. Timestamps travel as strings and are never interpreted here.
const sessionManagerScript = `
local counter_key = KEYS[1]
local access_key = KEYS[2]
local info_key = KEYS[3]
local op = ARGV[1]

if op == "new" then
  local now = ARGV[2]
  local info = ARGV[3]
  local session_id = redis.call("INCR", counter_key)
  redis.call("HSET", access_key, tostring(session_id), now)
  redis.call("HSET", info_key, tostring(session_id), info)
  return session_id
end

if op == "access" then
  local now = ARGV[2]
  local session_id = ARGV[3]
  if redis.call("HEXISTS", access_key, session_id) == 1 then
    redis.call("HSET", access_key, session_id, now)
    return 1
  end
  return 0
end

if op == "revoke" then
  local session_id = ARGV[2]
  redis.call("HDEL", access_key, session_id)
  redis.call("HDEL", info_key, session_id)
  return 1
end

if op == "revoke_all_except" then
  local keep = ARGV[2]
  if keep == "" then
    redis.call("DEL", access_key, info_key)
    return 1
  end
  local kept_access = redis.call("HGET", access_key, keep)
  local kept_info = redis.call("HGET", info_key, keep)
  redis.call("DEL", access_key, info_key)
  if kept_access and kept_info then
    redis.call("HSET", access_key, keep, kept_access)
    redis.call("HSET", info_key, keep, kept_info)
  end
  return 1
end

if op == "list" then
  local session_ids = redis.call("HKEYS", access_key)
  table.sort(session_ids, function(a, b)
    return tonumber(a) < tonumber(b)
  end)
  local result = {}
  for i, session_id in ipairs(session_ids) do
    result[i] = {
      session_id,
      redis.call("HGET", access_key, session_id),
      redis.call("HGET", info_key, session_id),
    }
  end
  return result
end

return redis.error_reply("unknown session operation: " .. op)
`

var sessionManagerLua = redis.NewScript(sessionManagerScript)
