package env

type NetEnvironment struct {
	HttpHost string `validate:"required,lowercase"`
	HttpPort string `validate:"required,numeric"`
	// AllowedOrigin is the fixed cross-origin allow-list entry for the editor
	// client. A literal "*" opens the API up during local development.
	AllowedOrigin string `validate:"required"`
}

func (e NetEnvironment) GetHttpPort() string {
	return e.HttpPort
}

func (e NetEnvironment) GetHttpHost() string {
	return e.HttpHost
}

func (e NetEnvironment) GetHostURL() string {
	return e.HttpHost + ":" + e.HttpPort
}
