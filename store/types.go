//nolint
package store

import "github.com/iov-one/cattery"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = cattery.ReadOnlyKVStore
type SetDeleter = cattery.SetDeleter
type KVStore = cattery.KVStore
type Batch = cattery.Batch
type CacheableKVStore = cattery.CacheableKVStore
type KVCacheWrap = cattery.KVCacheWrap
type CommitKVStore = cattery.CommitKVStore
type CommitID = cattery.CommitID
