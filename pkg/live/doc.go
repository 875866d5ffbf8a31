// Package live bridges state containers to clients over WebSocket.
//
// Each connection owns a states.States container built from the configured
// field map. Clients send JSON frames naming an operation and a field; the
// bridge applies them through the container's typed accessor API and streams
// the resulting patches back:
//
//	→ {"op":"set","field":"name","value":"Ada"}
//	← {"op":"patch","field":"name","value":"Ada"}
//	→ {"op":"snapshot"}
//	← {"op":"snapshot","fields":{"name":"Ada","agree":false}}
//
// The bridge exposes Prometheus metrics and traces each inbound frame with
// OpenTelemetry. It is the concrete form of the event-dispatch collaborator
// the bind package assumes: an input change on the client ends up as a set
// frame here.
package live
