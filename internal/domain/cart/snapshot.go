package cart

import (
	"context"

	"github.com/go-faster/errors"
)

// Sentinel errors for snapshot persistence.
var (
	// ErrNoSnapshot is returned by Load when no snapshot exists for the cart.
	ErrNoSnapshot = errors.New("no cart snapshot")
	// ErrCorruptSnapshot is returned when a stored slot cannot be decoded.
	// Callers recover by substituting an empty cart.
	ErrCorruptSnapshot = errors.New("corrupt cart snapshot")
)

// Snapshot is the persisted representation of a cart: the encoded ordered
// item list and the cached unit count. The two values occupy independent
// slots in the backing store but must always be written together.
type Snapshot struct {
	Items []byte
	Count int
}

// SnapshotRepository persists cart snapshots keyed by cart ID.
//
// Save overwrites both slots atomically. Load returns ErrNoSnapshot when no
// snapshot exists and ErrCorruptSnapshot (possibly wrapped) when a stored
// value is malformed. Delete removes both slots; deleting a missing snapshot
// is not an error.
type SnapshotRepository interface {
	Save(ctx context.Context, cartID string, snap Snapshot) error
	Load(ctx context.Context, cartID string) (Snapshot, error)
	Delete(ctx context.Context, cartID string) error
}
