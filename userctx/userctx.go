// Package userctx carries the authenticated caller through a request context.
package userctx

import "context"

type userIDKey struct{}

type nameCodeKey struct{}

var UserIDKey = userIDKey{}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(UserIDKey)
	s, ok := v.(string)
	return s, ok
}

func MustUserID(ctx context.Context) string {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		panic("user id missing from context")
	}
	return id
}

// WithNameCode stores the Soundex code of the caller's name.
func WithNameCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, nameCodeKey{}, code)
}

func NameCodeFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(nameCodeKey{}).(string)
	return s, ok
}
