package store

import (
	"time"

	"umsjevari_go/database"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Mode names which path served a storage operation.
type Mode string

const (
	ModePrimary  Mode = "primary"
	ModeFallback Mode = "fallback"
)

// Entity presents a uniform list/insert/update/delete contract over one
// managed collection, substituting the in-process fallback store whenever
// the primary database errors. The substitution is deliberately coarse: any
// primary error, transient or permanent, degrades to fallback. Errors are
// logged at Error level so a permanent misconfiguration stays visible.
type Entity[T any] struct {
	name     string
	fallback *Fallback[T]
}

// NewEntity wires a facade for one entity collection.
func NewEntity[T any](name string, fallback *Fallback[T]) *Entity[T] {
	return &Entity[T]{name: name, fallback: fallback}
}

// Name returns the entity name used in logs and activity records.
func (e *Entity[T]) Name() string { return e.name }

// FallbackStore exposes the underlying fallback collection (tests and
// restart simulation).
func (e *Entity[T]) FallbackStore() *Fallback[T] { return e.fallback }

func (e *Entity[T]) db() *gorm.DB {
	return database.GetDB()
}

func (e *Entity[T]) logDegrade(op string, err error) {
	logrus.WithFields(logrus.Fields{
		"entity": e.name,
		"op":     op,
		"error":  err.Error(),
	}).Error("primary store unavailable, using fallback")
}

// List returns all records newest first. It never fails: a primary-store
// error degrades to the fallback store's contents, which serve seeded
// defaults while empty.
func (e *Entity[T]) List() ([]T, Mode) {
	db := e.db()
	if db == nil {
		return e.fallback.List(), ModeFallback
	}

	var out []T
	if err := db.Model(new(T)).Order("created_at DESC").Find(&out).Error; err != nil {
		e.logDegrade("list", err)
		return e.fallback.List(), ModeFallback
	}
	return out, ModePrimary
}

// Insert persists a record, preferring the primary store. On failure the
// record is appended to the fallback store under a locally generated id, and
// the returned mode tells the caller the data is not durable.
func (e *Entity[T]) Insert(rec *T) (Mode, error) {
	db := e.db()
	if db == nil {
		e.fallback.Insert(rec)
		return ModeFallback, nil
	}

	if err := db.Create(rec).Error; err != nil {
		e.logDegrade("insert", err)
		e.fallback.Insert(rec)
		return ModeFallback, nil
	}
	return ModePrimary, nil
}

// Get fetches one record by id from whichever store holds it.
func (e *Entity[T]) Get(id uint) (T, Mode, bool) {
	db := e.db()
	if db != nil {
		var rec T
		err := db.First(&rec, id).Error
		if err == nil {
			return rec, ModePrimary, true
		}
		if err != gorm.ErrRecordNotFound {
			e.logDegrade("get", err)
		}
	}

	rec, ok := e.fallback.Get(id)
	return rec, ModeFallback, ok
}

// Update applies mutate to the record with the given id, primary store
// first, fallback second. A record created under one storage mode is not
// visible to the other, so an id minted during an outage stays mutable only
// in the fallback store.
func (e *Entity[T]) Update(id uint, mutate func(*T)) (Mode, bool) {
	db := e.db()
	if db != nil {
		var rec T
		err := db.First(&rec, id).Error
		if err == nil {
			mutate(&rec)
			if saveErr := db.Save(&rec).Error; saveErr == nil {
				return ModePrimary, true
			} else {
				e.logDegrade("update", saveErr)
			}
		} else if err != gorm.ErrRecordNotFound {
			e.logDegrade("update", err)
		}
	}

	if e.fallback.Update(id, mutate) {
		return ModeFallback, true
	}
	return ModeFallback, false
}

// Delete removes the record from whichever store currently holds it and
// reports whether anything was actually removed.
func (e *Entity[T]) Delete(id uint) bool {
	db := e.db()
	if db != nil {
		res := db.Delete(new(T), id)
		if res.Error != nil {
			e.logDegrade("delete", res.Error)
		} else if res.RowsAffected > 0 {
			return true
		}
	}

	return e.fallback.Delete(id)
}

// baseSeedTime staggers the seeded defaults so newest-first ordering is
// stable regardless of process start time.
func baseSeedTime(daysAgo int) time.Time {
	return time.Now().AddDate(0, 0, -daysAgo)
}
