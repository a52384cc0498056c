package config

import "fmt"

type StoreKeyStruct struct{}

func NewStoreKeyStruct() *StoreKeyStruct {
	return &StoreKeyStruct{}
}

// ResultKey returns the storage key for a submitted test result.
// The "test_result_" prefix is part of the persistence contract: the
// results view reads back the exact same key.
func (r *StoreKeyStruct) ResultKey(testID string) string {
	return fmt.Sprintf("test_result_%s", testID)
}

// AttemptDeadlineKey returns the cache key for an attempt's absolute deadline.
func (r *StoreKeyStruct) AttemptDeadlineKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s:deadline", attemptID)
}

var StoreKey = NewStoreKeyStruct()
