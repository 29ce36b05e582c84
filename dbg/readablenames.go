package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts arbitrary values into random readable names. It flagrantly
// leaks memory but generates the names lazily, so it's not a problem unless
// you're actually using it. This is helpful for telling fragments, faces and
// loops apart in verbose output, where printing all of their points would be
// unreadable.

var (
	memo  map[interface{}]string
	taken map[string]struct{}
	lock  sync.Mutex
)

func init() {
	memo = make(map[interface{}]string)
	taken = make(map[string]struct{})
	// Since the ids are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to the
	// same thing between runs.
	petname.NonDeterministicMode()
}

// A readable name for a value. Equal values get the same name. Values that
// can't be map keys, like paths, are keyed by their printed form.
func Name(obj interface{}) string {
	value := reflect.ValueOf(obj)
	if !value.IsValid() {
		return "Ø"
	}
	switch value.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if value.IsNil() {
			return "Ø"
		}
	}

	key := obj
	if !value.Type().Comparable() {
		key = fmt.Sprintf("%T%v", obj, obj)
	}

	lock.Lock()
	defer lock.Unlock()
	if r, ok := memo[key]; ok {
		return r
	}
	r := fresh()
	memo[key] = r
	return r
}

func fresh() string {
	for attempt := 0; ; attempt++ {
		r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
		if attempt > 10 {
			r = fmt.Sprintf("%s%d", r, len(taken))
		}
		if _, ok := taken[r]; !ok {
			taken[r] = struct{}{}
			return r
		}
	}
}
