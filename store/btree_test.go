package store

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBTreeCacheWrap(t *testing.T) {
	suite := NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
	t.Run("get and set", suite.GetSet)
	t.Run("cache conflicts", suite.CacheConflicts)
	t.Run("nested caches", suite.NestedCaches)
}

func TestLogableStore(t *testing.T) {
	Convey("Given a logable store", t, func() {
		kv, ops := LogableStore()

		Convey("writes are recorded in order", func() {
			So(kv.Set([]byte("a"), []byte("1")), ShouldBeNil)
			So(kv.Delete([]byte("b")), ShouldBeNil)

			got := ops.ShowOps()
			So(len(got), ShouldEqual, 2)
			So(got[0].IsSetOp(), ShouldBeTrue)
			So(string(got[0].Key()), ShouldEqual, "a")
			So(string(got[0].Value()), ShouldEqual, "1")
			So(got[1].IsSetOp(), ShouldBeFalse)
			So(string(got[1].Key()), ShouldEqual, "b")
		})

		Convey("cached writes are recorded only once written", func() {
			cache := kv.CacheWrap()
			So(cache.Set([]byte("c"), []byte("3")), ShouldBeNil)
			So(len(ops.ShowOps()), ShouldEqual, 0)

			So(cache.Write(), ShouldBeNil)
			So(len(ops.ShowOps()), ShouldEqual, 1)

			val, err := kv.Get([]byte("c"))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "3")
		})
	})
}

func TestSavepointLayers(t *testing.T) {
	Convey("Given a block layer with a funded account", t, func() {
		base := MemStore()
		block := base.CacheWrap()
		So(block.Set([]byte("balance"), []byte("100")), ShouldBeNil)

		Convey("a failed purchase savepoint is dropped", func() {
			purchase := block.CacheWrap()
			So(purchase.Set([]byte("balance"), []byte("40")), ShouldBeNil)
			So(purchase.Set([]byte("kitty/1"), []byte("bob")), ShouldBeNil)
			purchase.Discard()

			val, err := block.Get([]byte("balance"))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "100")
			has, err := block.Has([]byte("kitty/1"))
			So(err, ShouldBeNil)
			So(has, ShouldBeFalse)
		})

		Convey("a successful savepoint is only visible in its parent", func() {
			purchase := block.CacheWrap()
			So(purchase.Set([]byte("kitty/1"), []byte("bob")), ShouldBeNil)
			So(purchase.Write(), ShouldBeNil)

			val, err := block.Get([]byte("kitty/1"))
			So(err, ShouldBeNil)
			So(string(val), ShouldEqual, "bob")

			Convey("and the block can still be thrown away", func() {
				block.Discard()
				has, err := base.Has([]byte("kitty/1"))
				So(err, ShouldBeNil)
				So(has, ShouldBeFalse)
			})
		})
	})
}

func TestEmptyStore(t *testing.T) {
	Convey("An empty store never holds data", t, func() {
		var e EmptyKVStore
		So(e.Set([]byte("a"), []byte("b")), ShouldBeNil)
		val, err := e.Get([]byte("a"))
		So(err, ShouldBeNil)
		So(val, ShouldBeNil)
		has, err := e.Has([]byte("a"))
		So(err, ShouldBeNil)
		So(has, ShouldBeFalse)
	})
}
