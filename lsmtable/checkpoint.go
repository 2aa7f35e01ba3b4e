package lsmtable

import "github.com/nutsdb/nutsdb"

// checkpointKey is the in-bucket key under which the last queryable key
// watermark is stored, alongside the merged entries themselves.
var checkpointKey = []byte("__lsmtable_checkpoint__")

// CheckpointSink is a Writer that commits each merged entry into a nutsdb
// bucket and records it as the table's last-queryable-key watermark in
// the same transaction, so a reader opened against the bucket mid-merge
// never observes a commit that didn't fully land.
type CheckpointSink struct {
	db     *nutsdb.DB
	bucket string
}

// NewCheckpointSink returns a sink committing into bucket of db. The
// bucket is created on first use.
func NewCheckpointSink(db *nutsdb.DB, bucket string) *CheckpointSink {
	return &CheckpointSink{db: db, bucket: bucket}
}

// FeedEntry implements Writer: it always commits immediately and never
// asks for a retry, since nutsdb's transaction either commits in full or
// fails outright.
func (s *CheckpointSink) FeedEntry(key, value []byte) (wantMore bool, err error) {
	err = s.db.Update(func(tx *nutsdb.Tx) error {
		if putErr := tx.Put(s.bucket, key, value, 0); putErr != nil {
			return putErr
		}
		return tx.Put(s.bucket, checkpointKey, key, 0)
	})
	return false, err
}

// LastQueryableKey returns the most recently committed checkpoint key, or
// nil if the sink has never committed an entry.
func (s *CheckpointSink) LastQueryableKey() ([]byte, error) {
	var key []byte
	err := s.db.View(func(tx *nutsdb.Tx) error {
		entry, getErr := tx.Get(s.bucket, checkpointKey)
		if getErr != nil {
			if getErr == nutsdb.ErrKeyNotFound || getErr == nutsdb.ErrBucketNotFound {
				return nil
			}
			return getErr
		}
		key = append([]byte(nil), entry.Value...)
		return nil
	})
	return key, err
}

// Get reads back a previously committed entry's value, for readers
// driven directly off the checkpointed bucket.
func (s *CheckpointSink) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *nutsdb.Tx) error {
		entry, getErr := tx.Get(s.bucket, key)
		if getErr != nil {
			return getErr
		}
		value = append([]byte(nil), entry.Value...)
		return nil
	})
	return value, err
}
