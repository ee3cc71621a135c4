package config

type HTTP struct {
	Port uint32 `env:"HTTP_PORT" envDefault:"8000"`
	// Playground serves GraphiQL on GET /graphql.
	Playground     bool     `env:"HTTP_PLAYGROUND" envDefault:"true"`
	AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	// GraphQLMaxDepth bounds query nesting. Zero disables the check.
	GraphQLMaxDepth int `env:"HTTP_GRAPHQL_MAX_DEPTH" envDefault:"10"`
}
