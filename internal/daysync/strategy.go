package daysync

import "context"

// Writer persists a value for a key with one of the strategies below.
type Writer[T any] interface {
	Write(ctx context.Context, key Key, value T) error
	Operation() string
}

type upsertWriter[T any] struct {
	store Upserter[T]
}

// Upsert writes with a single atomic insert-or-overwrite on (user_id, entry_date).
func Upsert[T any](store Upserter[T]) Writer[T] {
	return upsertWriter[T]{store: store}
}

func (writer upsertWriter[T]) Write(ctx context.Context, key Key, value T) error {
	return writer.store.Upsert(ctx, key, value)
}

func (writer upsertWriter[T]) Operation() string { return "upsert" }

type checkThenWriteWriter[T any] struct {
	store InsertUpdater[T]
}

// CheckThenWrite looks up the day's row and updates it, or inserts when absent.
// Two concurrent writers can both miss the lookup and both insert; use Upsert
// where the store has a uniqueness constraint to rely on.
func CheckThenWrite[T any](store InsertUpdater[T]) Writer[T] {
	return checkThenWriteWriter[T]{store: store}
}

func (writer checkThenWriteWriter[T]) Write(ctx context.Context, key Key, value T) error {
	rowID, found, err := writer.store.FindRowID(ctx, key)
	if err != nil {
		return err
	}
	if found {
		return writer.store.UpdateRow(ctx, rowID, value)
	}
	return writer.store.Insert(ctx, key, value)
}

func (writer checkThenWriteWriter[T]) Operation() string { return "check_then_write" }

type appendWriter[T any] struct {
	store Inserter[T]
}

// Append inserts a new row on every write.
func Append[T any](store Inserter[T]) Writer[T] {
	return appendWriter[T]{store: store}
}

func (writer appendWriter[T]) Write(ctx context.Context, key Key, value T) error {
	return writer.store.Insert(ctx, key, value)
}

func (writer appendWriter[T]) Operation() string { return "append" }
