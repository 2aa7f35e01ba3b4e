package urltransfer

import (
	"errors"
	"sync"

	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/memstream"
	"github.com/nabbar/gsk/stream"
)

// ErrOneshotUploadExhausted is returned by a factory built with
// NewOneshotUpload when it is called a second time, e.g. after a
// followed redirect.
var ErrOneshotUploadExhausted = errors.New("urltransfer: oneshot upload stream already consumed")

// NewOneshotUpload wraps a single stream.Stream as an UploadFactory. The
// wrapped stream is handed out once; any subsequent call errors, since a
// stream can only be read once.
func NewOneshotUpload(s stream.Stream, size int64, knownSize bool) UploadFactory {
	var once sync.Once
	used := false
	var mu sync.Mutex

	return func() (stream.Stream, int64, bool, error) {
		mu.Lock()
		defer mu.Unlock()
		if used {
			return nil, 0, false, ErrOneshotUploadExhausted
		}
		var out stream.Stream
		once.Do(func() {
			out = s
			used = true
		})
		return out, size, knownSize, nil
	}
}

// NewPacketUpload builds a repeatable UploadFactory from an immutable
// in-memory packet: each call returns a fresh buffer source over the same
// bytes, so it may be reused across every redirect hop.
func NewPacketUpload(packet []byte) UploadFactory {
	size := int64(len(packet))
	return func() (stream.Stream, int64, bool, error) {
		buf := buffer.NewFromBytes(append([]byte(nil), packet...))
		return memstream.NewBufferSource(buf), size, true, nil
	}
}
