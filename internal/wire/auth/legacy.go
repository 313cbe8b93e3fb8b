package auth

// Legacy_Auth carries no challenge exchange: the password travels in the
// database parameter buffer and the server checks it on attach. The plugin
// exists so older servers appear in the advertised plugin list; it never
// produces continuation data or a session key.

func init() {
	Register("Legacy_Auth", func(user, password string) Client {
		return &legacyClient{}
	})
}

type legacyClient struct{}

func (*legacyClient) PluginName() string { return "Legacy_Auth" }

func (*legacyClient) InitialData() ([]byte, error) { return nil, nil }

func (*legacyClient) Respond(serverData []byte) ([]byte, error) {
	return nil, nil
}

func (*legacyClient) SessionKey() []byte { return nil }
