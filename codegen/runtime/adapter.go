package runtime

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// Adapter is the surface's capability for "read/write a value of type V
// using Builder B" (§6). Every emitted struct exposes exactly one value
// implementing this, named <Struct>ADAPTER (§3 invariant 3).
//
// The read(protocol) convenience overload §4.5 describes is generated
// per struct rather than modeled here, since constructing a fresh B
// requires knowing the concrete Builder type.
type Adapter[V any, B any] interface {
	Write(ctx context.Context, p thrift.TProtocol, v V) error
	Read(ctx context.Context, p thrift.TProtocol, b B) (V, error)
}
