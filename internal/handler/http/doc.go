// Package http implements the HTTP transport of the replisync server.
//
// It exposes the pull and push endpoints of the sync protocol and the
// version endpoint. Request tracing, access logging, compression and bearer
// authentication are handled here before requests reach the sync service.
package http
