package logging

import "context"

type ctxKey struct{}

// ContextWith returns a copy of ctx carrying the key-value pairs args. Every
// backend appends them to the records logged with that context.
func ContextWith(ctx context.Context, args ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, withContext(ctx, args))
}

// withContext prepends the pairs carried by ctx to args.
func withContext(ctx context.Context, args []any) []any {
	if ctx == nil {
		return args
	}
	carried, _ := ctx.Value(ctxKey{}).([]any)
	if len(carried) == 0 {
		return args
	}
	out := make([]any, 0, len(carried)+len(args))
	out = append(out, carried...)
	return append(out, args...)
}
