// Command respkv-server runs the respkv key-value server.
//
// Configuration is read from, lowest priority first: built-in defaults,
// a YAML file (--config), RESPKV_* environment variables (nested keys
// joined with "__", e.g. RESPKV_SERVER__REDIS__ADDR) and flags.
//
//	respkv-server --port 6380
//	respkv-server -c /etc/respkv/server.yaml --metrics-addr 127.0.0.1:9121
//	respkv-server --print-config
package main
