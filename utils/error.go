package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ErrStaleInventory signals an optimistic-lock conflict on an inventory
// record: another writer bumped the version between our read and write.
var ErrStaleInventory = errors.New("inventory record version is stale")

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
