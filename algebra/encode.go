package algebra

import "fmt"

// Encoded is the wire-neutral serialized form every Operation round-trips
// through: a module tag, an operation tag, and the operation's declared
// fields in order. Turning an Encoded value into actual bytes (JSON or
// otherwise) is left to the caller's framing layer; this package only
// guarantees decode(encode(op)) == op structurally.
type Encoded struct {
	Module string
	Op     string
	Fields []any
}

// Constructor builds an Operation from its decoded fields.
type Constructor func(fields []any) (Operation, error)

var registry = map[string]Constructor{}

// Register adds a (module, op) -> constructor mapping. Intended to be
// called from package init(); panics on duplicate registration since that
// can only happen from a programming mistake, never from user input.
func Register(module, op string, ctor Constructor) {
	key := registryKey(module, op)
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("algebra: duplicate registration for %s", key))
	}
	registry[key] = ctor
}

// Decode resolves an Encoded value back into an Operation via the
// (module_tag, op_tag) -> constructor registry.
func Decode(enc Encoded) (Operation, error) {
	ctor, ok := registry[registryKey(enc.Module, enc.Op)]
	if !ok {
		return nil, fmt.Errorf("algebra: no operation registered for %s/%s", enc.Module, enc.Op)
	}
	return ctor(enc.Fields)
}

func registryKey(module, op string) string {
	return module + "/" + op
}
