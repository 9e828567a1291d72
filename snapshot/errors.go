package snapshot

import (
	"errors"

	"github.com/hupe1980/dynbitset/blobstore"
)

var (
	// ErrNotFound is returned when no snapshot exists under a name.
	ErrNotFound = blobstore.ErrNotFound

	// ErrInvalidName is returned for names the blob store cannot hold.
	ErrInvalidName = blobstore.ErrInvalidName

	// ErrBadMagic is returned when a blob does not start with the snapshot magic.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrChecksumMismatch is returned when a header or payload checksum does not match.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")

	// ErrCorrupt is returned when header fields are inconsistent with the blob.
	ErrCorrupt = errors.New("snapshot: corrupt")

	// ErrTooLarge is returned when a snapshot holds more words than WithMaxWords allows.
	ErrTooLarge = errors.New("snapshot: too large")
)
