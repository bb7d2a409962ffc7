package redis

import "strconv"

// Key layout for one namespace:
//
//	{ns}:seq          INCR counter handing out record IDs
//	{ns}:ids          sorted set of live IDs, scored by ID
//	{ns}:record:{id}  hash with username and name fields
type keys struct {
	ns string
}

func (k keys) seq() string { return k.ns + ":seq" }

func (k keys) ids() string { return k.ns + ":ids" }

func (k keys) record(id int64) string {
	return k.ns + ":record:" + strconv.FormatInt(id, 10)
}
