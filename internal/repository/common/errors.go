package common

import "errors"

// ErrNotFound возвращается, когда строки нет в таблице.
var ErrNotFound = errors.New("entity not found")
