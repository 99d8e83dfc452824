/*
Package observability turns interpreter lifecycle hooks into metrics and logs.

Metrics registers Prometheus collectors and exposes a domain.LifecycleHooks
value that feeds them; LogHooks does the same for a structured logger. Both
can be combined with LifecycleHooks.Merge and passed to rewind.WithLifecycleHooks.
*/
package observability
