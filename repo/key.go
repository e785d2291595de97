package repo

import "fmt"

// Key identifies a blob either by its internal row id or by its content
// hash. Construct one with Rid or UUID; the zero Key is not valid.
type Key struct {
	rid   int64
	uuid  string
	byRid bool
}

// Rid keys a lookup by internal row id.
func Rid(rid int64) Key {
	return Key{rid: rid, byRid: true}
}

// UUID keys a lookup by lowercase hex content hash.
func UUID(uuid string) Key {
	return Key{uuid: uuid}
}

// column returns the blob table column the key selects on. Only the two
// fixed names are ever returned, so the value is safe to splice into SQL.
func (k Key) column() string {
	if k.byRid {
		return "rid"
	}

	return "uuid"
}

// value returns the bind parameter for the key.
func (k Key) value() any {
	if k.byRid {
		return k.rid
	}

	return k.uuid
}

func (k Key) String() string {
	if k.byRid {
		return fmt.Sprintf("rid %d", k.rid)
	}

	return fmt.Sprintf("uuid %q", k.uuid)
}
