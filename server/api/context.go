package api

import "context"

type contextKey int

const ctxKeySubject contextKey = 0

// ContextWithSubject stores the authenticated user id on the context.
// The auth middleware calls this before handing the request to handlers.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ctxKeySubject, subject)
}

// SubjectFromContext returns the authenticated user id, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(ctxKeySubject).(string)
	return subject, ok && subject != ""
}
