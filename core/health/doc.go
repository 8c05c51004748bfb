// Package health provides probe handlers for orchestrators and load balancers.
//
//	r.Handle("/health/live", health.Liveness[*router.Context], http.MethodGet)
//	r.Handle("/health/ready", health.Readiness[*router.Context](log, db.PingContext), http.MethodGet)
//	r.Handle("/ping", health.NoContent[*router.Context], http.MethodGet)
//
// Readiness runs its checks concurrently under a shared deadline and answers
// 503 Service Unavailable when any of them fails.
package health
