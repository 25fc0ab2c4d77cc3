/*
Package cattery defines all common interfaces used to tie together
the extensions of the cattery application, as well as implementations
of the simpler components (when interfaces would be too much overhead).

We pass context through context.Context between app, decorators and
handlers. To do so, cattery defines some common keys to store info,
such as block height, block hash and chain id. Each extension, such as
auth, may add its own keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want
to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).

All state access goes through KVStore. Extensions that must mutate
several records as one unit use a CacheableKVStore and its KVCacheWrap
savepoints: all writes are collected in the cache and either written
together or discarded together.
*/
package cattery
