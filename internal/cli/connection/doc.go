// Package connection talks to a respkv server for respkv-cli.
//
// A Client holds one TCP (or unix socket) connection and sends each
// command as an array of bulk strings, reading back exactly one reply.
// The connection is dialed lazily and redialed after a transport error.
package connection
