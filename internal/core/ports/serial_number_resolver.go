package ports

import "context"

// SerialNumberResolver produces the externally visible order number (the
// "sn" of an order). Implementations must return values unique across orders;
// the orders table enforces it with a unique index.
//
// The create order handler takes the resolver as a constructor dependency, so
// the strategy is chosen once at wiring time:
//
//	handler := commands.NewCreateOrderCommandHandler(uowFactory, carts,
//	    sequence.NewSerialNumberResolver(redisClient, "ORD"), logger)
type SerialNumberResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// SerialNumberResolverFunc adapts a plain function, e.g. a fixed sequence in tests.
//
// Example:
//
//	fixed := ports.SerialNumberResolverFunc(func(context.Context) (string, error) {
//	    return "SN-1", nil
//	})
type SerialNumberResolverFunc func(ctx context.Context) (string, error)

func (f SerialNumberResolverFunc) Resolve(ctx context.Context) (string, error) {
	return f(ctx)
}
