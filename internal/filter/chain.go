// Package filter composes optional query predicates keyed by paths into a
// sparse Criteria map.
//
// A Chain is immutable once built: Extend and Compose return new chains, and
// Apply never mutates the receiver, so one chain can serve concurrent callers.
package filter

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cast"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrBadValue is attached to a query when a criteria value cannot be coerced
// to the type a unit needs.
var ErrBadValue = errors.New("bad criteria value")

// Func narrows query using the value found in the criteria.
type Func func(query *gorm.DB, value any) *gorm.DB

// Unit is a single optional predicate.
type Unit struct {
	path []string
	fn   Func
}

// NewUnit applies fn when path is present in the criteria.
func NewUnit(fn Func, path ...string) Unit {
	return Unit{path: append([]string(nil), path...), fn: fn}
}

// Eq matches column exactly against the value at path.
func Eq(column string, path ...string) Unit {
	return NewUnit(func(query *gorm.DB, value any) *gorm.DB {
		return query.Where(column+" = ?", value)
	}, path...)
}

// Path returns the dotted key path of the unit.
func (u Unit) Path() string {
	return strings.Join(u.path, ".")
}

// Chain is an ordered list of units applied conjunctively.
type Chain struct {
	units []Unit
}

// New builds a chain from units in order.
func New(units ...Unit) Chain {
	return Chain{units: append([]Unit(nil), units...)}
}

// Extend returns a new chain with units appended.
func (c Chain) Extend(units ...Unit) Chain {
	out := make([]Unit, 0, len(c.units)+len(units))
	out = append(out, c.units...)
	return Chain{units: append(out, units...)}
}

// Compose returns a chain running c's units followed by next's.
func (c Chain) Compose(next Chain) Chain {
	return c.Extend(next.units...)
}

// Len is the number of units.
func (c Chain) Len() int {
	return len(c.units)
}

// Paths lists the dotted key paths in application order.
func (c Chain) Paths() []string {
	out := make([]string, len(c.units))
	for i, u := range c.units {
		out[i] = u.Path()
	}
	return out
}

// Apply runs every unit whose path is present in criteria. Absent paths add
// no constraint.
func (c Chain) Apply(query *gorm.DB, criteria Criteria) *gorm.DB {
	for _, u := range c.units {
		value, ok := criteria.Lookup(u.path...)
		if !ok {
			continue
		}
		query = u.fn(query, value)
	}
	return query
}

// Once memoizes build. Concurrent first callers share a single build.
func Once(build func() Chain) func() Chain {
	return sync.OnceValue(build)
}

// Int coerces the value to an int before calling fn.
func Int(fn func(query *gorm.DB, n int) *gorm.DB) Func {
	return func(query *gorm.DB, value any) *gorm.DB {
		n, err := cast.ToIntE(value)
		if err != nil {
			_ = query.AddError(fmt.Errorf("%w: %v", ErrBadValue, err))
			return query
		}
		return fn(query, n)
	}
}

// String coerces the value to a string before calling fn.
func String(fn func(query *gorm.DB, s string) *gorm.DB) Func {
	return func(query *gorm.DB, value any) *gorm.DB {
		s, err := cast.ToStringE(value)
		if err != nil {
			_ = query.AddError(fmt.Errorf("%w: %v", ErrBadValue, err))
			return query
		}
		return fn(query, s)
	}
}

// Date coerces the value to a calendar date before calling fn, so it binds
// as a date on every driver.
func Date(fn func(query *gorm.DB, d datatypes.Date) *gorm.DB) Func {
	return func(query *gorm.DB, value any) *gorm.DB {
		t, err := cast.ToTimeE(value)
		if err != nil {
			_ = query.AddError(fmt.Errorf("%w: %v", ErrBadValue, err))
			return query
		}
		return fn(query, datatypes.Date(t))
	}
}
