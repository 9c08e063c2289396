// Package mapkv is a small key-value cache façade over pluggable providers.
//
// Components:
//   - Provider: backend adapter (provider/mapstore for map-like in-memory
//     stores, provider/redis for Redis).
//   - Codec[V]: (de)serializes V <-> []byte. Skipped entirely in passthrough mode.
//   - events.Bus: "error" notifications from providers, see Cache.On.
//
// In-memory stores hold values directly, so NewInMemory builds a
// mapstore Adapter with passthrough values: nothing is encoded and Get
// returns the very value that was Set.
//
//	c, _ := mapkv.NewInMemory[*User](mapstore.NewMap(), mapkv.InMemoryOptions{
//	    Namespace: mapstore.Fixed("user"),
//	})
//	_ = c.Set(ctx, "42", u, time.Minute)
//	got, ok, _ := c.Get(ctx, "42") // got == u
//
// Keys:
//
//	<namespace>::<key>  - in-memory adapter (separator configurable)
//	<namespace>:<key>   - façade prefix, when the provider does not namespace
package mapkv
