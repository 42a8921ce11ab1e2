// Package telemetry provides statectx observers backed by Prometheus and
// OpenTelemetry.
//
//	reg := prometheus.NewRegistry()
//	obs := statectx.Observers(
//	    telemetry.Prometheus(telemetry.WithRegistry(reg)),
//	    telemetry.Tracing(),
//	)
//	Cart := statectx.Create(cartSchema, statectx.WithObserver(obs))
package telemetry
