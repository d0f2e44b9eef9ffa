package api

// Context carries the daemon address used by every command API call.
type Context struct {
	Server string
}

func InitContext(server string) *Context {
	return &Context{
		Server: server,
	}
}
