package h1

import "net"

// HeaderPair is one (name, value) entry exposed on RequestScope — plain
// strings, since by the time a scope is built the app-facing contract no
// longer benefits from the parser's zero-copy byte slices (spec.md §3).
type HeaderPair struct {
	Name  string
	Value string
}

// RequestScope is the immutable tuple delivered to the application
// callback (spec.md §3). Every field is a plain value; nothing here
// aliases the connection's read buffer.
type RequestScope struct {
	ScopeTag    string // always "http"
	HTTPVersion string // "1.0" or "1.1"
	Method      string
	Scheme      string // "http" or "https"
	Path        string
	RawQuery    string
	RootPath    string
	Headers     []HeaderPair
	ServerAddr  net.Addr
	ClientAddr  net.Addr
}

func buildScope(head *RequestHead, tls bool, client, server net.Addr) RequestScope {
	version := "1.1"
	if head.VersionByte == 0 {
		version = "1.0"
	}
	scheme := "http"
	if tls {
		scheme = "https"
	}

	headers := make([]HeaderPair, 0, head.Headers.count)
	head.Headers.each(func(name, value []byte) {
		headers = append(headers, HeaderPair{Name: string(name), Value: string(value)})
	})

	return RequestScope{
		ScopeTag:    "http",
		HTTPVersion: version,
		Method:      string(head.MethodBytes),
		Scheme:      scheme,
		Path:        string(head.PathBytes),
		RawQuery:    string(head.QueryBytes),
		RootPath:    "",
		Headers:     headers,
		ServerAddr:  server,
		ClientAddr:  client,
	}
}
