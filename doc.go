// Package kvs is a small Redis client for string and JSON values.
//
// A KvsClient wraps a go-redis client for a single database. It connects on
// first use and exposes Get/Set/Delete/Exists/TTL plus GetAsDict and SetDict,
// which store maps as JSON strings:
//
//	client := kvs.New("localhost", 6379, 0, kvs.WithLogger(log.Wrap(nil)))
//	defer client.Disconnect(ctx)
//
//	if _, err := client.SetDict(ctx, "user:1", map[string]any{"name": "John"}, time.Hour); err != nil {
//	    return err
//	}
//	user, ok, err := client.GetAsDict(ctx, "user:1")
//
// A missing key is reported through an ok result, never as an error. Errors
// from Redis itself are returned unchanged.
//
// Programs that want one shared client can use GetOrCreate and Close, or
// their own Registry:
//
//	client, err := kvs.GetOrCreate(ctx, kvs.WithHost("localhost"), kvs.WithPort(6379), kvs.WithDB(0))
//	...
//	client, err = kvs.GetOrCreate(ctx) // same client
package kvs
